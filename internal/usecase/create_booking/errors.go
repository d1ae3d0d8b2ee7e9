package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrEmptySelection возвращается, когда список запрошенных слотов пуст
	ErrEmptySelection = errors.New("create_booking: at least one slot must be selected")

	// ErrInvalidSlotID возвращается, когда запрошен слот вне диапазона [0, 23]
	ErrInvalidSlotID = errors.New("create_booking: invalid slot id")

	// ErrSlotUnavailable возвращается, когда хотя бы один из запрошенных
	// слотов занят. Конкретный слот несёт SlotUnavailableError.
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotUnavailableError ошибка занятого слота с указанием первого занятого
// слота в порядке возрастания. errors.Is(err, ErrSlotUnavailable) работает
// через Unwrap; слот достается через errors.As.
type SlotUnavailableError struct {
	SlotID int
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("create_booking: slot %d is not available", e.SlotID)
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}
