package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-10 is a Monday
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestNewPricingRule(t *testing.T) {
	resourceID := uuid.New()

	rule, err := NewPricingRule(resourceID, []string{"Monday", "Tuesday"}, []int{10, 9}, 500)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rule.ID)
	assert.Equal(t, resourceID, rule.ResourceID)
	assert.Equal(t, []string{"Monday", "Tuesday"}, rule.DayNames)
	// Слоты нормализуются: сортировка по возрастанию
	assert.Equal(t, []int{9, 10}, rule.SlotIDs)
	assert.Equal(t, int64(500), rule.PriceCents)
}

func TestNewPricingRule_Deduplicates(t *testing.T) {
	rule, err := NewPricingRule(uuid.New(), []string{"Monday", "Monday"}, []int{9, 9, 10}, 500)
	require.NoError(t, err)

	assert.Equal(t, []string{"Monday"}, rule.DayNames)
	assert.Equal(t, []int{9, 10}, rule.SlotIDs)
}

func TestNewPricingRule_Invalid(t *testing.T) {
	resourceID := uuid.New()

	_, err := NewPricingRule(resourceID, nil, []int{9}, 500)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewPricingRule(resourceID, []string{"Monday"}, nil, 500)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewPricingRule(resourceID, []string{"Funday"}, []int{9}, 500)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewPricingRule(resourceID, []string{"Monday"}, []int{24}, 500)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewPricingRule(resourceID, []string{"Monday"}, []int{9}, -1)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Monday", WeekdayName(monday))
	assert.Equal(t, "Sunday", WeekdayName(monday.AddDate(0, 0, -1)))
}

func TestResolvePrice_BaseFallback(t *testing.T) {
	// Без правил действует базовая цена
	price, err := ResolvePrice(nil, 1000, monday, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), price)

	// Правило на другой день не применяется
	rule, err := NewPricingRule(uuid.New(), []string{"Tuesday"}, []int{9}, 500)
	require.NoError(t, err)

	price, err = ResolvePrice([]PricingRule{rule}, 1000, monday, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), price)

	// Правило на тот же день, но другой слот тоже не применяется
	rule2, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{10}, 500)
	require.NoError(t, err)

	price, err = ResolvePrice([]PricingRule{rule2}, 1000, monday, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), price)
}

func TestResolvePrice_RuleMatch(t *testing.T) {
	rule, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{9, 10}, 500)
	require.NoError(t, err)

	price, err := ResolvePrice([]PricingRule{rule}, 1000, monday, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(500), price)
}

func TestResolvePrice_FirstMatchWins(t *testing.T) {
	first, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{9}, 500)
	require.NoError(t, err)
	second, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{9}, 700)
	require.NoError(t, err)

	// Побеждает первое правило в порядке хранения
	price, err := ResolvePrice([]PricingRule{first, second}, 1000, monday, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(500), price)

	price, err = ResolvePrice([]PricingRule{second, first}, 1000, monday, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(700), price)
}

func TestResolvePrice_InvalidSlot(t *testing.T) {
	_, err := ResolvePrice(nil, 1000, monday, 24)
	assert.ErrorIs(t, err, ErrInvalidSlotID)

	_, err = ResolvePrice(nil, 1000, monday, -1)
	assert.ErrorIs(t, err, ErrInvalidSlotID)
}

func TestCheckRuleConflicts(t *testing.T) {
	existing, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{9}, 500)
	require.NoError(t, err)
	rules := []PricingRule{existing}

	// Пересечение по дню и слоту - конфликт
	conflicts := CheckRuleConflicts([]string{"Monday"}, []int{9, 10}, rules)
	require.Len(t, conflicts, 1)
	assert.Equal(t, existing.ID, conflicts[0].RuleID)
	assert.Equal(t, 1, conflicts[0].RuleIndex)
	assert.Equal(t, []string{"Monday"}, conflicts[0].OverlappingDays)
	assert.Equal(t, int64(500), conflicts[0].PriceCents)

	// Общий день, но разные слоты - конфликта нет
	conflicts = CheckRuleConflicts([]string{"Monday"}, []int{10}, rules)
	assert.Empty(t, conflicts)

	// Общий слот, но разные дни - конфликта нет
	conflicts = CheckRuleConflicts([]string{"Tuesday"}, []int{9}, rules)
	assert.Empty(t, conflicts)
}

func TestCheckRuleConflicts_ReportsAllOverlaps(t *testing.T) {
	first, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{9}, 500)
	require.NoError(t, err)
	second, err := NewPricingRule(uuid.New(), []string{"Monday", "Wednesday"}, []int{9, 11}, 700)
	require.NoError(t, err)
	third, err := NewPricingRule(uuid.New(), []string{"Friday"}, []int{9}, 900)
	require.NoError(t, err)
	rules := []PricingRule{first, second, third}

	conflicts := CheckRuleConflicts([]string{"Monday", "Wednesday"}, []int{9}, rules)
	require.Len(t, conflicts, 2)

	assert.Equal(t, first.ID, conflicts[0].RuleID)
	assert.Equal(t, 1, conflicts[0].RuleIndex)
	assert.Equal(t, []string{"Monday"}, conflicts[0].OverlappingDays)

	assert.Equal(t, second.ID, conflicts[1].RuleID)
	assert.Equal(t, 2, conflicts[1].RuleIndex)
	assert.Equal(t, []string{"Monday", "Wednesday"}, conflicts[1].OverlappingDays)
}

func TestCheckRuleConflicts_SkipsLegacyRules(t *testing.T) {
	// Правило без слотов (историческая запись) не участвует в проверке
	legacy := PricingRule{
		ID:         uuid.New(),
		DayNames:   []string{"Monday"},
		SlotIDs:    nil,
		PriceCents: 500,
	}

	conflicts := CheckRuleConflicts([]string{"Monday"}, []int{9}, []PricingRule{legacy})
	assert.Empty(t, conflicts)
}

func TestPricingRule_AppliesTo(t *testing.T) {
	rule, err := NewPricingRule(uuid.New(), []string{"Monday"}, []int{9}, 500)
	require.NoError(t, err)

	assert.True(t, rule.AppliesTo("Monday", 9))
	assert.False(t, rule.AppliesTo("Monday", 10))
	assert.False(t, rule.AppliesTo("Tuesday", 9))
}
