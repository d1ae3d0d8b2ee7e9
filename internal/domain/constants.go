package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot grid constants. A day is partitioned into a fixed set of one-hour
// slots identified by hour-of-day.
const (
	SlotsPerDay = 24
	MinSlotID   = 0
	MaxSlotID   = 23
)

// TerminalStatuses список статусов, в которых бронирование больше не занимает слот.
// Используется при расчёте доступности слотов.
var TerminalStatuses = []ReservationStatus{
	StatusRejected,
	StatusCancelled,
}

// ActiveStatuses список статусов, в которых бронирование занимает свой слот
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
