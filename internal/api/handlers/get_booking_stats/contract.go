package get_booking_stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Stats(ctx context.Context, actor domain.Actor, resourceID *uuid.UUID) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
