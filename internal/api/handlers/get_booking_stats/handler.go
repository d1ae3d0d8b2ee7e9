package get_booking_stats

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/service/reservations"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgResourceNotFound  = "ресурс не найден"
	msgForbidden         = "доступ запрещен"
	msgUnauthorized      = "требуется аутентификация"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stats/bookings
// Query params: resourceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /stats/bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем resourceId из query параметров
	var resourceID *uuid.UUID
	if resourceIDStr := r.URL.Query().Get("resourceId"); resourceIDStr != "" {
		id, err := uuid.Parse(resourceIDStr)
		if err != nil {
			h.logger.Warn("GET /stats/bookings - Invalid resource ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}
		resourceID = &id
	}

	result, err := h.service.Stats(r.Context(), actor, resourceID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrResourceNotFound):
			h.logger.Warn("GET /stats/bookings - Resource not found: resource_id=%v", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /stats/bookings - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /stats/bookings - Failed to get stats: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stats/bookings - Stats retrieved successfully: user_id=%s, total=%d",
		actor.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
