package delete_pricing_rule

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

type PricingService interface {
	DeleteRule(ctx context.Context, actor domain.Actor, resourceID, ruleID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
