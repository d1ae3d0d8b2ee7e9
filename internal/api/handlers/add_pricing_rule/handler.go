package add_pricing_rule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/service/pricing"
	"github.com/maverk/IndoorBookingService/internal/service/pricing/models"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgResourceNotFound   = "ресурс не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidRule        = "некорректное правило ценообразования"
	msgRuleConflict       = "правило пересекается с существующими правилами"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/resources/{resourceId}/pricing-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /resources/{id}/pricing-rules - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("POST /resources/{id}/pricing-rules - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Декодируем body
	var req AddRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/pricing-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest()

	result, err := h.service.AddRule(r.Context(), actor, resourceID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrResourceNotFound):
			h.logger.Warn("POST /resources/{id}/pricing-rules - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, pricing.ErrAccessDenied):
			h.logger.Warn("POST /resources/{id}/pricing-rules - Access denied: resource_id=%s, user_id=%s",
				resourceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, pricing.ErrInvalidRule):
			h.logger.Warn("POST /resources/{id}/pricing-rules - Invalid rule: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, pricing.ErrRuleConflict):
			// Возвращаем полный список пересечений, чтобы владелец
			// мог исправить правило за один заход
			var conflictErr *pricing.RuleConflictError
			resp := ConflictErrorResponse{Error: msgRuleConflict}
			if errors.As(err, &conflictErr) {
				resp.Conflicts = models.FromDomainConflicts(conflictErr.Conflicts)
			}
			h.logger.Warn("POST /resources/{id}/pricing-rules - Rule conflict: resource_id=%s, conflicts=%d",
				resourceID, len(resp.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, resp)

		default:
			h.logger.Error("POST /resources/{id}/pricing-rules - Failed to add rule: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources/{id}/pricing-rules - Rule added successfully: resource_id=%s, rule_id=%s, user_id=%s",
		resourceID, result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
