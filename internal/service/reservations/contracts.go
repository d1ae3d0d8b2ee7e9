package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByResourceWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	CountByStatus(ctx context.Context, resourceID *uuid.UUID) (map[domain.ReservationStatus]int64, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
