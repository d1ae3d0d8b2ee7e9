package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maverk/IndoorBookingService/internal/domain"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
	"github.com/maverk/IndoorBookingService/internal/service/pricing/models"
)

type fakeResourceRepo struct {
	resource *domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	if f.resource == nil || f.resource.ID != id {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return f.resource, nil
}

func (f *fakeResourceRepo) AddRule(_ context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	saved := *rule
	saved.CreatedAt = time.Now()
	f.resource.PricingRules = append(f.resource.PricingRules, saved)
	return &saved, nil
}

func (f *fakeResourceRepo) DeleteRule(_ context.Context, resourceID, ruleID uuid.UUID) error {
	for i, rule := range f.resource.PricingRules {
		if rule.ID == ruleID {
			f.resource.PricingRules = append(f.resource.PricingRules[:i], f.resource.PricingRules[i+1:]...)
			return nil
		}
	}
	return resourceRepo.ErrRuleNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *domain.Resource, domain.Actor) {
	ownerID := uuid.New()
	resource := &domain.Resource{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           "Court A",
		BasePriceCents: 1000,
	}
	owner := domain.Actor{UserID: ownerID, Role: domain.RoleOwner}

	svc := NewService(&fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})
	return svc, resource, owner
}

func TestAddRule(t *testing.T) {
	svc, resource, owner := newTestService()

	rule, err := svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9, 10},
		PriceCents: 500,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rule.ID)
	assert.Equal(t, resource.ID, rule.ResourceID)
	assert.Equal(t, []string{"Monday"}, rule.DayNames)
	assert.Equal(t, []int{9, 10}, rule.SlotIDs)
	assert.Equal(t, int64(500), rule.PriceCents)
}

func TestAddRule_Conflict(t *testing.T) {
	svc, resource, owner := newTestService()

	first, err := svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9, 10},
		PriceCents: 500,
	})
	require.NoError(t, err)

	// Пересечение: Monday x slot 10
	_, err = svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{10, 11},
		PriceCents: 600,
	})
	require.ErrorIs(t, err, ErrRuleConflict)

	var conflictErr *RuleConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, first.ID, conflictErr.Conflicts[0].RuleID)
	assert.Equal(t, []string{"Monday"}, conflictErr.Conflicts[0].OverlappingDays)
	assert.Equal(t, int64(500), conflictErr.Conflicts[0].PriceCents)

	// Те же слоты в другой день конфликтом не являются
	_, err = svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Tuesday"},
		SlotIDs:    []int{9, 10},
		PriceCents: 600,
	})
	assert.NoError(t, err)
}

func TestAddRule_Invalid(t *testing.T) {
	svc, resource, owner := newTestService()

	_, err := svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Funday"},
		SlotIDs:    []int{9},
		PriceCents: 500,
	})
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestAddRule_AccessDenied(t *testing.T) {
	svc, resource, _ := newTestService()

	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleOwner}
	_, err := svc.AddRule(context.Background(), stranger, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9},
		PriceCents: 500,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Роль customer недостаточна даже для владельца ресурса
	customer := domain.Actor{UserID: resource.OwnerID, Role: domain.RoleCustomer}
	_, err = svc.AddRule(context.Background(), customer, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9},
		PriceCents: 500,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteRule(t *testing.T) {
	svc, resource, owner := newTestService()

	rule, err := svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9},
		PriceCents: 500,
	})
	require.NoError(t, err)

	err = svc.DeleteRule(context.Background(), owner, resource.ID, rule.ID)
	require.NoError(t, err)

	// Повторное удаление по тому же ID - правило уже не найдено
	err = svc.DeleteRule(context.Background(), owner, resource.ID, rule.ID)
	assert.ErrorIs(t, err, ErrRuleNotFound)

	// После удаления то же правило можно добавить заново без конфликта
	_, err = svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9},
		PriceCents: 700,
	})
	assert.NoError(t, err)
}

func TestDeleteRule_AccessDenied(t *testing.T) {
	svc, resource, owner := newTestService()

	rule, err := svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9},
		PriceCents: 500,
	})
	require.NoError(t, err)

	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleOwner}
	err = svc.DeleteRule(context.Background(), stranger, resource.ID, rule.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListRules(t *testing.T) {
	svc, resource, owner := newTestService()

	_, err := svc.AddRule(context.Background(), owner, resource.ID, &models.AddRuleRequest{
		DayNames:   []string{"Monday"},
		SlotIDs:    []int{9},
		PriceCents: 500,
	})
	require.NoError(t, err)

	resp, err := svc.ListRules(context.Background(), resource.ID)
	require.NoError(t, err)

	assert.Equal(t, resource.ID, resp.ResourceID)
	assert.Equal(t, int64(1000), resp.BasePriceCents)
	require.Len(t, resp.Rules, 1)
	assert.Equal(t, []int{9}, resp.Rules[0].SlotIDs)
}

func TestListRules_ResourceNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListRules(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
