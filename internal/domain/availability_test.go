package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationOn(date time.Time, slotID int, status ReservationStatus) *Reservation {
	return &Reservation{
		ID:         uuid.New(),
		ResourceID: uuid.New(),
		CustomerID: uuid.New(),
		Date:       date,
		SlotID:     slotID,
		Status:     status,
	}
}

func TestAvailabilityForDate_EmptyDay(t *testing.T) {
	availability := AvailabilityForDate(monday, nil)

	require.Len(t, availability, SlotsPerDay)
	for slotID := MinSlotID; slotID <= MaxSlotID; slotID++ {
		assert.True(t, availability[slotID], "slot %d", slotID)
	}
}

func TestAvailabilityForDate_ActiveReservationsBlock(t *testing.T) {
	reservations := []*Reservation{
		reservationOn(monday, 5, StatusPending),
		reservationOn(monday, 10, StatusConfirmed),
	}

	availability := AvailabilityForDate(monday, reservations)

	assert.False(t, availability[5])
	assert.False(t, availability[10])
	assert.True(t, availability[6])
}

func TestAvailabilityForDate_InactiveReservationsDoNotBlock(t *testing.T) {
	// Отмененная бронь освобождает слот для повторного бронирования
	reservations := []*Reservation{
		reservationOn(monday, 5, StatusCancelled),
		reservationOn(monday, 10, StatusRejected),
	}

	availability := AvailabilityForDate(monday, reservations)

	assert.True(t, availability[5])
	assert.True(t, availability[10])
}

func TestAvailabilityForDate_OtherDateDoesNotBlock(t *testing.T) {
	reservations := []*Reservation{
		reservationOn(monday.AddDate(0, 0, 1), 5, StatusConfirmed),
	}

	availability := AvailabilityForDate(monday, reservations)

	assert.True(t, availability[5])
}

func TestAvailabilityForDate_IgnoresTimeOfDay(t *testing.T) {
	// Сравниваются календарные дни, время внутри дня не учитывается
	reservations := []*Reservation{
		reservationOn(monday.Add(15*time.Hour), 5, StatusConfirmed),
	}

	availability := AvailabilityForDate(monday, reservations)

	assert.False(t, availability[5])
}

func TestIsSameDay(t *testing.T) {
	assert.True(t, IsSameDay(monday, monday.Add(23*time.Hour)))
	assert.False(t, IsSameDay(monday, monday.AddDate(0, 0, 1)))
}

func TestReservation_CanTransitionTo(t *testing.T) {
	pending := reservationOn(monday, 5, StatusPending)
	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.True(t, pending.CanTransitionTo(StatusRejected))
	assert.False(t, pending.CanTransitionTo(StatusCancelled))

	confirmed := reservationOn(monday, 5, StatusConfirmed)
	assert.False(t, confirmed.CanTransitionTo(StatusRejected))

	cancelled := reservationOn(monday, 5, StatusCancelled)
	assert.False(t, cancelled.CanTransitionTo(StatusConfirmed))
}

func TestReservation_CanBeCancelled(t *testing.T) {
	assert.True(t, reservationOn(monday, 5, StatusPending).CanBeCancelled())
	assert.True(t, reservationOn(monday, 5, StatusConfirmed).CanBeCancelled())
	assert.False(t, reservationOn(monday, 5, StatusRejected).CanBeCancelled())
	assert.False(t, reservationOn(monday, 5, StatusCancelled).CanBeCancelled())
}
