package domain

import "time"

// AvailabilityForDate computes the free/taken flag for every one of the 24
// slots of a resource on the given date. A slot is taken iff at least one
// reservation in the input matches the calendar date and the slot id and is
// still active (pending or confirmed); rejected and cancelled reservations
// never block, so a cancelled slot is immediately rebookable.
//
// The caller supplies all reservations of one resource — filtering by resource
// is the caller's job. The map is recomputed from scratch on every call so the
// answer always reflects the snapshot handed in; no state is cached.
func AvailabilityForDate(date time.Time, reservations []*Reservation) map[int]bool {
	availability := make(map[int]bool, SlotsPerDay)
	for slotID := MinSlotID; slotID <= MaxSlotID; slotID++ {
		availability[slotID] = true
	}

	for _, reservation := range reservations {
		if !reservation.IsActive() {
			continue
		}
		if !IsSameDay(reservation.Date, date) {
			continue
		}
		if reservation.SlotID < MinSlotID || reservation.SlotID > MaxSlotID {
			continue
		}
		availability[reservation.SlotID] = false
	}

	return availability
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
