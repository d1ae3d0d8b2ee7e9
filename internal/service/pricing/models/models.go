package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

// Request модели

// AddRuleRequest запрос на добавление правила ценообразования
type AddRuleRequest struct {
	DayNames   []string `json:"dayNames"`
	SlotIDs    []int    `json:"slotIds"`
	PriceCents int64    `json:"priceCents"`
}

// Response модели

// RuleResponse ответ с данными правила ценообразования
type RuleResponse struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resourceId"`
	DayNames   []string  `json:"dayNames"`
	SlotIDs    []int     `json:"slotIds"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RuleListResponse ответ со списком правил ресурса
type RuleListResponse struct {
	ResourceID     uuid.UUID      `json:"resourceId"`
	BasePriceCents int64          `json:"basePriceCents"`
	Rules          []RuleResponse `json:"rules"`
}

// ConflictResponse описание одного пересечения с существующим правилом
type ConflictResponse struct {
	RuleID          uuid.UUID `json:"ruleId"`
	RuleIndex       int       `json:"ruleIndex"`
	OverlappingDays []string  `json:"overlappingDays"`
	PriceCents      int64     `json:"priceCents"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель правила в DTO
func FromDomainRule(r *domain.PricingRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		DayNames:   r.DayNames,
		SlotIDs:    r.SlotIDs,
		PriceCents: r.PriceCents,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainRuleList конвертирует список правил ресурса в DTO
func FromDomainRuleList(resource *domain.Resource, rules []domain.PricingRule) *RuleListResponse {
	resp := &RuleListResponse{
		ResourceID:     resource.ID,
		BasePriceCents: resource.BasePriceCents,
		Rules:          make([]RuleResponse, 0, len(rules)),
	}

	for i := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(&rules[i]))
	}

	return resp
}

// FromDomainConflicts конвертирует список конфликтов в DTO
func FromDomainConflicts(conflicts []domain.RuleConflict) []ConflictResponse {
	resp := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		resp = append(resp, ConflictResponse{
			RuleID:          c.RuleID,
			RuleIndex:       c.RuleIndex,
			OverlappingDays: c.OverlappingDays,
			PriceCents:      c.PriceCents,
		})
	}
	return resp
}
