package reservations

import "errors"

var (
	// ErrReservationNotFound бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrResourceNotFound ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")
	// ErrAccessDenied недостаточно прав для операции
	ErrAccessDenied = errors.New("access denied")
	// ErrCannotCancel бронирование нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("reservation cannot be cancelled")
	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
