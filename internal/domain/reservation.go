package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a customer's claim on one slot of one resource on
// one calendar date. PriceCents is a snapshot taken at creation time and is
// never recomputed, even if pricing rules change later.
type Reservation struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	CustomerID uuid.UUID
	Date       time.Time // calendar date; time-of-day is ignored
	SlotID     int
	Status     ReservationStatus
	PriceCents int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the reservation still occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled reports whether a customer may still cancel the reservation
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanTransitionTo reports whether an owner decision to the given status is
// allowed: only pending reservations can be confirmed or rejected.
func (r *Reservation) CanTransitionTo(status ReservationStatus) bool {
	if r.Status != StatusPending {
		return false
	}
	return status == StatusConfirmed || status == StatusRejected
}

// ResourceReservationsFilter фильтр для выборки бронирований ресурса
type ResourceReservationsFilter struct {
	ResourceID      uuid.UUID          // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отклонённые и отменённые бронирования
}
