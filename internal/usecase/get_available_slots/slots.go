package get_available_slots

import (
	"time"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

// buildDaySchedule строит расписание ресурса на день: для каждого из 24
// слотов флаг доступности по снимку броней и действующая цена по правилам
// ценообразования. Чистая функция — результат всегда пересчитывается от
// переданного снимка.
func buildDaySchedule(
	resource *domain.Resource,
	date time.Time,
	reservations []*domain.Reservation,
) ([]Slot, error) {
	availability := domain.AvailabilityForDate(date, reservations)

	slots := make([]Slot, 0, domain.SlotsPerDay)
	for _, slot := range domain.AllSlots() {
		priceCents, err := resource.PriceForSlot(date, slot.ID)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{
			SlotID:      slot.ID,
			DisplayName: slot.DisplayName,
			Available:   availability[slot.ID],
			PriceCents:  priceCents,
		})
	}

	return slots, nil
}
