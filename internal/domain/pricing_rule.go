package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidRule возвращается при попытке создать правило с пустыми днями,
	// пустыми слотами, неизвестным днём недели или отрицательной ценой
	ErrInvalidRule = errors.New("invalid pricing rule")

	// ErrRuleNotFound возвращается при удалении несуществующего правила
	ErrRuleNotFound = errors.New("pricing rule not found")
)

// weekdayNames допустимые имена дней недели (совпадают с time.Weekday.String())
var weekdayNames = map[string]struct{}{
	"Sunday":    {},
	"Monday":    {},
	"Tuesday":   {},
	"Wednesday": {},
	"Thursday":  {},
	"Friday":    {},
	"Saturday":  {},
}

// PricingRule is an owner-defined price override: a set of weekdays and a set
// of slot ids bound to a fixed price in the currency's minor units. Rules are
// never mutated in place; replacement is delete-and-recreate.
type PricingRule struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	DayNames   []string
	SlotIDs    []int
	PriceCents int64
	CreatedAt  time.Time
}

// NewPricingRule validates and normalizes a candidate rule: day names must be
// real weekdays, slot ids valid; slot ids are deduplicated and sorted ascending.
func NewPricingRule(resourceID uuid.UUID, dayNames []string, slotIDs []int, priceCents int64) (PricingRule, error) {
	if len(dayNames) == 0 {
		return PricingRule{}, fmt.Errorf("%w: at least one day is required", ErrInvalidRule)
	}
	if len(slotIDs) == 0 {
		return PricingRule{}, fmt.Errorf("%w: at least one slot is required", ErrInvalidRule)
	}
	if priceCents < 0 {
		return PricingRule{}, fmt.Errorf("%w: price must be non-negative", ErrInvalidRule)
	}

	days := make([]string, 0, len(dayNames))
	seenDays := make(map[string]struct{}, len(dayNames))
	for _, day := range dayNames {
		if _, ok := weekdayNames[day]; !ok {
			return PricingRule{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidRule, day)
		}
		if _, dup := seenDays[day]; dup {
			continue
		}
		seenDays[day] = struct{}{}
		days = append(days, day)
	}

	slots := make([]int, 0, len(slotIDs))
	seenSlots := make(map[int]struct{}, len(slotIDs))
	for _, slotID := range slotIDs {
		if _, err := SlotByID(slotID); err != nil {
			return PricingRule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		if _, dup := seenSlots[slotID]; dup {
			continue
		}
		seenSlots[slotID] = struct{}{}
		slots = append(slots, slotID)
	}
	sort.Ints(slots)

	return PricingRule{
		ID:         uuid.New(),
		ResourceID: resourceID,
		DayNames:   days,
		SlotIDs:    slots,
		PriceCents: priceCents,
	}, nil
}

// AppliesTo reports whether the rule covers the given weekday and slot
func (r *PricingRule) AppliesTo(dayName string, slotID int) bool {
	return r.containsDay(dayName) && r.containsSlot(slotID)
}

// HasSlots reports whether the rule carries any slot ids. Legacy rules created
// before the slot-grid migration have none and are excluded from conflict
// checking, see CheckRuleConflicts.
func (r *PricingRule) HasSlots() bool {
	return len(r.SlotIDs) > 0
}

func (r *PricingRule) containsDay(dayName string) bool {
	for _, d := range r.DayNames {
		if d == dayName {
			return true
		}
	}
	return false
}

func (r *PricingRule) containsSlot(slotID int) bool {
	for _, s := range r.SlotIDs {
		if s == slotID {
			return true
		}
	}
	return false
}

// WeekdayName returns the weekday name of the date, matching DayNames entries
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// ResolvePrice computes the effective price in minor units for a (date, slot)
// pair: the first rule in stored (creation) order whose days contain the
// date's weekday and whose slots contain slotID wins; without a match the
// resource's base price applies.
//
// More than one rule can match only in a degenerate state the conflict check
// normally prevents (legacy rules without slot ids bypass it). First-in-order
// is the deliberate, deterministic tie-break for that case, not an accident.
func ResolvePrice(rules []PricingRule, basePriceCents int64, date time.Time, slotID int) (int64, error) {
	if _, err := SlotByID(slotID); err != nil {
		return 0, err
	}

	dayName := WeekdayName(date)
	for i := range rules {
		if rules[i].AppliesTo(dayName, slotID) {
			return rules[i].PriceCents, nil
		}
	}
	return basePriceCents, nil
}

// RuleConflict describes one existing rule that overlaps a candidate: which
// days intersect and what the existing rule charges. RuleIndex is the 1-based
// position in stored order, kept for display ("Rule #N").
type RuleConflict struct {
	RuleID          uuid.UUID
	RuleIndex       int
	OverlappingDays []string
	PriceCents      int64
}

// CheckRuleConflicts reports every existing rule that shares at least one
// weekday AND at least one slot id with the candidate. The full list is
// returned so callers can render a complete conflict report.
//
// Rules without slot ids (legacy data) are skipped and never reported — a
// backward-compatibility accommodation, preserved on purpose.
func CheckRuleConflicts(candidateDays []string, candidateSlotIDs []int, existing []PricingRule) []RuleConflict {
	conflicts := make([]RuleConflict, 0)

	for i := range existing {
		rule := &existing[i]
		if !rule.HasSlots() {
			continue
		}

		overlappingDays := make([]string, 0)
		for _, day := range candidateDays {
			if rule.containsDay(day) {
				overlappingDays = append(overlappingDays, day)
			}
		}
		// Без пересечения по дням пересечение по слотам можно не считать
		if len(overlappingDays) == 0 {
			continue
		}

		slotOverlap := false
		for _, slotID := range candidateSlotIDs {
			if rule.containsSlot(slotID) {
				slotOverlap = true
				break
			}
		}
		if !slotOverlap {
			continue
		}

		conflicts = append(conflicts, RuleConflict{
			RuleID:          rule.ID,
			RuleIndex:       i + 1,
			OverlappingDays: overlappingDays,
			PriceCents:      rule.PriceCents,
		})
	}

	return conflicts
}
