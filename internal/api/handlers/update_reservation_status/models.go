package update_reservation_status

import (
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed | rejected
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Status: r.Status,
	}
}
