package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSlotID возвращается, когда ID слота вне диапазона [0, 23]
var ErrInvalidSlotID = errors.New("slot id must be between 0 and 23")

// Slot represents one of the 24 fixed one-hour booking units of a calendar day.
// Slots are derived on demand and never persisted: the id (hour of day) is the
// identity, StartHour/EndHour are offsets in hours from midnight.
type Slot struct {
	ID          int
	StartHour   int
	EndHour     int // slot 23 ends at hour 24 of the same day, not hour 0 of the next
	DisplayName string
}

// AllSlots returns the fixed catalog of 24 slots. Pure function of no input,
// identical on every call.
func AllSlots() []Slot {
	slots := make([]Slot, 0, SlotsPerDay)
	for hour := MinSlotID; hour <= MaxSlotID; hour++ {
		slots = append(slots, newSlot(hour))
	}
	return slots
}

// SlotByID returns the slot descriptor for the given id.
// Fails with ErrInvalidSlotID when id is outside [0, 23].
func SlotByID(id int) (Slot, error) {
	if id < MinSlotID || id > MaxSlotID {
		return Slot{}, fmt.Errorf("%w: got %d", ErrInvalidSlotID, id)
	}
	return newSlot(id), nil
}

func newSlot(id int) Slot {
	endHour := id + 1 // 24 for the last slot, the wrap matters only for display
	return Slot{
		ID:          id,
		StartHour:   id,
		EndHour:     endHour,
		DisplayName: formatSlotDisplay(id, endHour%SlotsPerDay),
	}
}

// formatSlotDisplay renders the slot range in 12-hour format,
// e.g. "6:00 AM - 7:00 AM".
func formatSlotDisplay(startHour, endHour int) string {
	return formatHour(startHour) + " - " + formatHour(endHour)
}

func formatHour(hour int) string {
	display := hour % 12
	if display == 0 {
		display = 12
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}

// SlotIDFromTimeRange converts the legacy "06:00-07:00" string format to a
// slot id. Malformed input maps to slot 0, matching how historical records
// were migrated.
func SlotIDFromTimeRange(timeRange string) int {
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return 0
	}

	startParts := strings.Split(parts[0], ":")
	if len(startParts) < 2 {
		return 0
	}

	hour, err := strconv.Atoi(startParts[0])
	if err != nil || hour < MinSlotID || hour > MaxSlotID {
		return 0
	}
	return hour
}
