package update_reservation_status

import (
	"errors"
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
	msgResourceNotFound     = "ресурс не найден"
	msgForbidden            = "доступ запрещен"
	msgInvalidStatus        = "некорректный статус"
	msgInvalidTransition    = "решение возможно только по ожидающему бронированию"
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

// Handle PATCH /api/v1/bookings/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := uuid.Parse(vars["reservationId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Декодируем body
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest()

	err = h.service.UpdateStatus(r.Context(), actor, reservationID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrResourceNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Resource not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: reservation_id=%s, user_id=%s",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: reservation_id=%s, status=%s",
				reservationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: reservation_id=%s, status=%s",
				reservationID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated successfully: reservation_id=%s, status=%s, user_id=%s",
		reservationID, req.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
