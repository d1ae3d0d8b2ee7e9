package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

var (
	// ErrResourceNotFound ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")
	// ErrRuleNotFound правило ценообразования не найдено
	ErrRuleNotFound = errors.New("pricing rule not found")
	// ErrAccessDenied пользователь не является владельцем ресурса
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidRule правило ценообразования не прошло валидацию
	ErrInvalidRule = errors.New("invalid pricing rule")
	// ErrRuleConflict новое правило пересекается с существующими
	ErrRuleConflict = errors.New("pricing rule conflict")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)

// RuleConflictError ошибка пересечения нового правила с существующими.
// Содержит полный список конфликтов, чтобы владелец мог исправить
// правило за один заход, а не перебором.
type RuleConflictError struct {
	Conflicts []domain.RuleConflict
}

func (e *RuleConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("rule #%d on %s (%d cents)",
			c.RuleIndex, strings.Join(c.OverlappingDays, ", "), c.PriceCents))
	}
	return fmt.Sprintf("pricing rule conflict: overlaps with %s", strings.Join(parts, "; "))
}

func (e *RuleConflictError) Unwrap() error {
	return ErrRuleConflict
}
