package add_pricing_rule

import (
	"github.com/maverk/IndoorBookingService/internal/service/pricing/models"
)

// AddRuleRequest HTTP request model
type AddRuleRequest struct {
	DayNames   []string `json:"dayNames"`
	SlotIDs    []int    `json:"slotIds"`
	PriceCents int64    `json:"priceCents"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddRuleRequest) ToServiceRequest() *models.AddRuleRequest {
	return &models.AddRuleRequest{
		DayNames:   r.DayNames,
		SlotIDs:    r.SlotIDs,
		PriceCents: r.PriceCents,
	}
}

// ConflictErrorResponse ответ при пересечении с существующими правилами
type ConflictErrorResponse struct {
	Error     string                    `json:"error"`
	Conflicts []models.ConflictResponse `json:"conflicts"`
}
