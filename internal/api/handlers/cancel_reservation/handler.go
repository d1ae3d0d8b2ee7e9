package cancel_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotCancel         = "бронирование не может быть отменено"
	msgUnauthorized         = "требуется аутентификация"
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

// Handle PATCH /api/v1/bookings/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := uuid.Parse(vars["reservationId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Декодируем body, причина отмены опциональна
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest()

	err = h.service.Cancel(r.Context(), actor, reservationID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: reservation_id=%s, user_id=%s",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Reservation cancelled successfully: reservation_id=%s, user_id=%s",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
