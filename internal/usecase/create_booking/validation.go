package create_booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Валидация слотов делегируется каталогу слотов.
func validateRequest(req *Request) error {
	if req.Actor.UserID == uuid.Nil {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.SlotIDs) == 0 {
		return ErrEmptySelection
	}

	for _, slotID := range req.SlotIDs {
		if _, err := domain.SlotByID(slotID); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSlotID, err)
		}
	}

	return nil
}

// normalizeSlotIDs отбрасывает дубликаты и сортирует слоты по возрастанию.
// Порядок возрастания фиксирует, какой занятый слот будет назван первым.
func normalizeSlotIDs(slotIDs []int) []int {
	seen := make(map[int]struct{}, len(slotIDs))
	normalized := make([]int, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		if _, dup := seen[slotID]; dup {
			continue
		}
		seen[slotID] = struct{}{}
		normalized = append(normalized, slotID)
	}
	sort.Ints(normalized)
	return normalized
}

// planReservations чистая функция планирования брони: проверяет доступность
// каждого запрошенного слота по переданному снимку броней и строит черновики
// новых броней со снимком цены. Никакого I/O — запись черновиков остаётся
// за вызывающим кодом.
func planReservations(
	resource *domain.Resource,
	date time.Time,
	slotIDs []int,
	customerID uuid.UUID,
	existing []*domain.Reservation,
) ([]*domain.Reservation, error) {
	availability := domain.AvailabilityForDate(date, existing)

	// Сначала проверяем все слоты: частичная бронь не планируется
	for _, slotID := range slotIDs {
		if !availability[slotID] {
			return nil, &SlotUnavailableError{SlotID: slotID}
		}
	}

	drafts := make([]*domain.Reservation, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		priceCents, err := resource.PriceForSlot(date, slotID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSlotID, err)
		}

		drafts = append(drafts, &domain.Reservation{
			ResourceID: resource.ID,
			CustomerID: customerID,
			Date:       date,
			SlotID:     slotID,
			Status:     domain.StatusPending,
			PriceCents: priceCents,
		})
	}

	return drafts, nil
}
