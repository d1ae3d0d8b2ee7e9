package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на решение владельца по бронированию
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	Status *string `json:"status,omitempty"`
}

// GetResourceReservationsRequest запрос на получение бронирований ресурса
type GetResourceReservationsRequest struct {
	Date            *time.Time `json:"date,omitempty"`            // Конкретная дата (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отклонённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetResourceReservationsRequest) ToDomainFilter(resourceID uuid.UUID) (domain.ResourceReservationsFilter, error) {
	filter := domain.ResourceReservationsFilter{
		ResourceID:      resourceID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resourceId"`
	CustomerID uuid.UUID `json:"customerId"`
	Date       string    `json:"date"` // "2025-10-15"
	SlotID     int       `json:"slotId"`
	SlotName   string    `json:"slotName"` // "6:00 AM - 7:00 AM"
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// StatsResponse сводка бронирований по статусам
type StatsResponse struct {
	ResourceID *uuid.UUID `json:"resourceId,omitempty"`
	Total      int64      `json:"total"`
	Pending    int64      `json:"pending"`
	Confirmed  int64      `json:"confirmed"`
	Rejected   int64      `json:"rejected"`
	Cancelled  int64      `json:"cancelled"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ResourceID:         r.ResourceID,
		CustomerID:         r.CustomerID,
		Date:               r.Date.Format(domain.DateFormat),
		SlotID:             r.SlotID,
		Status:             string(r.Status),
		PriceCents:         r.PriceCents,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	// Слот с некорректным ID в базе не появляется, но DTO не должно паниковать
	if slot, err := domain.SlotByID(r.SlotID); err == nil {
		resp.SlotName = slot.DisplayName
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, reservation := range reservations {
		if r := FromDomainReservation(reservation); r != nil {
			resp.Reservations = append(resp.Reservations, *r)
		}
	}

	return resp
}

// FromDomainCounts конвертирует счетчики по статусам в DTO
func FromDomainCounts(resourceID *uuid.UUID, counts map[domain.ReservationStatus]int64) *StatsResponse {
	resp := &StatsResponse{
		ResourceID: resourceID,
		Pending:    counts[domain.StatusPending],
		Confirmed:  counts[domain.StatusConfirmed],
		Rejected:   counts[domain.StatusRejected],
		Cancelled:  counts[domain.StatusCancelled],
	}
	resp.Total = resp.Pending + resp.Confirmed + resp.Rejected + resp.Cancelled
	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusRejected,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
