package get_resource_reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetResourceReservations(ctx context.Context, actor domain.Actor, resourceID uuid.UUID, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
