package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/service/reservations"
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

const (
	msgInvalidStatus = "некорректный статус"
	msgUnauthorized  = "требуется аутентификация"
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

// Handle GET /api/v1/users/me/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем status из query параметров
	req := &models.GetUserReservationsRequest{}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetUserReservations(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /users/me/bookings - Invalid status: user_id=%s, status=%v", actor.UserID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/me/bookings - Failed to get reservations: user_id=%s, error=%v",
				actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/bookings - Reservations retrieved successfully: user_id=%s, count=%d",
		actor.UserID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
