package cancel_reservation

import (
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest() *models.CancelReservationRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelReservationRequest{
		CancellationReason: reason,
	}
}
