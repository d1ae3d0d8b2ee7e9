package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	getAvailableSlots "github.com/maverk/IndoorBookingService/internal/usecase/get_available_slots"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	ResourceID     uuid.UUID       `json:"resourceId"`
	Date           string          `json:"date"`
	BasePriceCents int64           `json:"basePriceCents"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель одного слота дня
type AvailableSlot struct {
	SlotID     int    `json:"slotId"`
	SlotName   string `json:"slotName"`
	Available  bool   `json:"available"`
	PriceCents int64  `json:"priceCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *DayScheduleResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			SlotID:     slot.SlotID,
			SlotName:   slot.DisplayName,
			Available:  slot.Available,
			PriceCents: slot.PriceCents,
		}
	}

	return &DayScheduleResponse{
		ResourceID:     resp.ResourceID,
		Date:           resp.Date.Format(domain.DateFormat),
		BasePriceCents: resp.BasePriceCents,
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(resourceID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ResourceID: resourceID,
		Date:       date,
	}, nil
}
