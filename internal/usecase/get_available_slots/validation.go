package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
