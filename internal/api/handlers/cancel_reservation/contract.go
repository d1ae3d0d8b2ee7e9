package cancel_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, actor domain.Actor, reservationID uuid.UUID, req *models.CancelReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
