package add_pricing_rule

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/internal/service/pricing/models"
)

type PricingService interface {
	AddRule(ctx context.Context, actor domain.Actor, resourceID uuid.UUID, req *models.AddRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
