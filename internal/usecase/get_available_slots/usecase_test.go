package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maverk/IndoorBookingService/internal/domain"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
)

// 2024-06-10 is a Monday
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeResourceRepo struct {
	resource *domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	if f.resource == nil || f.resource.ID != id {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return f.resource, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestResource(t *testing.T) *domain.Resource {
	t.Helper()

	resource := &domain.Resource{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Name:           "Court A",
		BasePriceCents: 1000,
	}

	// Monday slots 9-10 cost 500 instead of the base price
	rule, err := domain.NewPricingRule(resource.ID, []string{"Monday"}, []int{9, 10}, 500)
	require.NoError(t, err)
	resource.PricingRules = []domain.PricingRule{rule}

	return resource
}

func TestExecute_FullDaySchedule(t *testing.T) {
	resource := newTestResource(t)
	reservations := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:         uuid.New(),
				ResourceID: resource.ID,
				CustomerID: uuid.New(),
				Date:       monday,
				SlotID:     5,
				Status:     domain.StatusConfirmed,
			},
		},
	}
	uc := NewUseCase(reservations, &fakeResourceRepo{resource: resource}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: resource.ID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, resource.ID, resp.ResourceID)
	assert.Equal(t, int64(1000), resp.BasePriceCents)

	// Ответ всегда содержит все 24 слота в порядке возрастания ID
	require.Len(t, resp.Slots, domain.SlotsPerDay)
	for i, slot := range resp.Slots {
		assert.Equal(t, i, slot.SlotID)
		assert.NotEmpty(t, slot.DisplayName)
	}

	// Занят только слот 5
	for _, slot := range resp.Slots {
		assert.Equal(t, slot.SlotID != 5, slot.Available, "slot %d", slot.SlotID)
	}

	// Слоты 9 и 10 по цене правила, остальные по базовой
	for _, slot := range resp.Slots {
		if slot.SlotID == 9 || slot.SlotID == 10 {
			assert.Equal(t, int64(500), slot.PriceCents, "slot %d", slot.SlotID)
		} else {
			assert.Equal(t, int64(1000), slot.PriceCents, "slot %d", slot.SlotID)
		}
	}
}

func TestExecute_RuleDoesNotApplyOnOtherDay(t *testing.T) {
	resource := newTestResource(t)
	uc := NewUseCase(&fakeReservationRepo{}, &fakeResourceRepo{resource: resource}, nopLogger{})

	// 2024-06-11 is a Tuesday, the Monday rule must not apply
	tuesday := monday.AddDate(0, 0, 1)
	resp, err := uc.Execute(context.Background(), &Request{ResourceID: resource.ID, Date: tuesday})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.Equal(t, int64(1000), slot.PriceCents, "slot %d", slot.SlotID)
	}
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeResourceRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: uuid.New(), Date: monday})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	resource := newTestResource(t)
	uc := NewUseCase(&fakeReservationRepo{}, &fakeResourceRepo{resource: resource}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: uuid.Nil, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: resource.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
