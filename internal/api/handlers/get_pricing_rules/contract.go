package get_pricing_rules

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/service/pricing/models"
)

type PricingService interface {
	ListRules(ctx context.Context, resourceID uuid.UUID) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
