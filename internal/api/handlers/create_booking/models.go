package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	createBooking "github.com/maverk/IndoorBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resourceId"`
	Date       string    `json:"date"` // "2025-10-15"
	SlotIDs    []int     `json:"slotIds"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ResourceID      uuid.UUID             `json:"resourceId"`
	Date            string                `json:"date"`
	Reservations    []ReservationResponse `json:"reservations"`
	TotalPriceCents int64                 `json:"totalPriceCents"`
}

// ReservationResponse созданная бронь одного слота
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	SlotID     int       `json:"slotId"`
	SlotName   string    `json:"slotName"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  string    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:      actor,
		ResourceID: r.ResourceID,
		Date:       date,
		SlotIDs:    r.SlotIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	reservations := make([]ReservationResponse, len(resp.Reservations))
	for i, reservation := range resp.Reservations {
		reservations[i] = ReservationResponse{
			ID:         reservation.ID,
			SlotID:     reservation.SlotID,
			SlotName:   reservation.DisplayName,
			Status:     reservation.Status,
			PriceCents: reservation.PriceCents,
			CreatedAt:  reservation.CreatedAt.Format(time.RFC3339),
		}
	}

	return &CreateBookingResponse{
		ResourceID:      resp.ResourceID,
		Date:            resp.Date.Format(domain.DateFormat),
		Reservations:    reservations,
		TotalPriceCents: resp.TotalPriceCents,
	}
}
