package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов и правил ценообразования
type ResourceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	AddRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	DeleteRule(ctx context.Context, resourceID, ruleID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
