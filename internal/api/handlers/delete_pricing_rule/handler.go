package delete_pricing_rule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/service/pricing"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidRuleID     = "некорректный ID правила"
	msgResourceNotFound  = "ресурс не найден"
	msgRuleNotFound      = "правило ценообразования не найдено"
	msgForbidden         = "доступ запрещен"
	msgUnauthorized      = "требуется аутентификация"
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

// Handle DELETE /api/v1/resources/{resourceId}/pricing-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /resources/{id}/pricing-rules/{ruleId} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем resourceId и ruleId из URL
	vars := mux.Vars(r)
	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("DELETE /resources/{id}/pricing-rules/{ruleId} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	ruleID, err := uuid.Parse(vars["ruleId"])
	if err != nil {
		h.logger.Warn("DELETE /resources/{id}/pricing-rules/{ruleId} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	err = h.service.DeleteRule(r.Context(), actor, resourceID, ruleID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrResourceNotFound):
			h.logger.Warn("DELETE /resources/{id}/pricing-rules/{ruleId} - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, pricing.ErrRuleNotFound):
			h.logger.Warn("DELETE /resources/{id}/pricing-rules/{ruleId} - Rule not found: resource_id=%s, rule_id=%s",
				resourceID, ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, pricing.ErrAccessDenied):
			h.logger.Warn("DELETE /resources/{id}/pricing-rules/{ruleId} - Access denied: resource_id=%s, user_id=%s",
				resourceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /resources/{id}/pricing-rules/{ruleId} - Failed to delete rule: resource_id=%s, rule_id=%s, error=%v",
				resourceID, ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id}/pricing-rules/{ruleId} - Rule deleted successfully: resource_id=%s, rule_id=%s, user_id=%s",
		resourceID, ruleID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
