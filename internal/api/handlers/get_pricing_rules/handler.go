package get_pricing_rules

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/service/pricing"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgResourceNotFound  = "ресурс не найден"
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

// Handle GET /api/v1/resources/{resourceId}/pricing-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("GET /resources/{id}/pricing-rules - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	result, err := h.service.ListRules(r.Context(), resourceID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/pricing-rules - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("GET /resources/{id}/pricing-rules - Failed to get rules: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/pricing-rules - Rules retrieved successfully: resource_id=%s, count=%d",
		resourceID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
