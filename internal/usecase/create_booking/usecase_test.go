package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maverk/IndoorBookingService/internal/domain"
	reservationRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
)

// 2024-06-10 is a Monday
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fakeReservationRepo struct {
	existing  []*domain.Reservation
	created   []*domain.Reservation
	createErr error
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *reservation
	saved.ID = uuid.New()
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	f.created = append(f.created, &saved)
	return &saved, nil
}

func (f *fakeReservationRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	return f.existing, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

	// Monday slot 8 costs 500 instead of the base price
	rule, err := domain.NewPricingRule(resource.ID, []string{"Monday"}, []int{8}, 500)
	require.NoError(t, err)
	resource.PricingRules = []domain.PricingRule{rule}

	return resource
}

func newTestRequest(resource *domain.Resource, slotIDs []int) *Request {
	return &Request{
		Actor:      domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer},
		ResourceID: resource.ID,
		Date:       monday,
		SlotIDs:    slotIDs,
	}
}

func TestExecute_Success(t *testing.T) {
	resource := newTestResource(t)
	reservations := &fakeReservationRepo{}
	uc := NewUseCase(reservations, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), newTestRequest(resource, []int{8, 7}))
	require.NoError(t, err)

	require.Len(t, resp.Reservations, 2)
	// Слоты в порядке возрастания независимо от порядка в запросе
	assert.Equal(t, 7, resp.Reservations[0].SlotID)
	assert.Equal(t, 8, resp.Reservations[1].SlotID)

	// Слот 7 по базовой цене, слот 8 по правилу
	assert.Equal(t, int64(1000), resp.Reservations[0].PriceCents)
	assert.Equal(t, int64(500), resp.Reservations[1].PriceCents)
	assert.Equal(t, int64(1500), resp.TotalPriceCents)

	for _, reservation := range resp.Reservations {
		assert.Equal(t, string(domain.StatusPending), reservation.Status)
		assert.NotEqual(t, uuid.Nil, reservation.ID)
		assert.NotEmpty(t, reservation.DisplayName)
	}
}

func TestExecute_DeduplicatesSlots(t *testing.T) {
	resource := newTestResource(t)
	reservations := &fakeReservationRepo{}
	uc := NewUseCase(reservations, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), newTestRequest(resource, []int{7, 7, 7}))
	require.NoError(t, err)

	assert.Len(t, resp.Reservations, 1)
	assert.Len(t, reservations.created, 1)
}

func TestExecute_SlotUnavailable(t *testing.T) {
	resource := newTestResource(t)
	reservations := &fakeReservationRepo{
		existing: []*domain.Reservation{
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
	uc := NewUseCase(reservations, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), newTestRequest(resource, []int{5, 6}))
	require.ErrorIs(t, err, ErrSlotUnavailable)

	var slotErr *SlotUnavailableError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, 5, slotErr.SlotID)

	// Весь запрос отклоняется целиком: свободный слот 6 тоже не бронируется
	assert.Empty(t, reservations.created)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	resource := newTestResource(t)
	reservations := &fakeReservationRepo{
		existing: []*domain.Reservation{
			{
				ID:         uuid.New(),
				ResourceID: resource.ID,
				CustomerID: uuid.New(),
				Date:       monday,
				SlotID:     5,
				Status:     domain.StatusCancelled,
			},
		},
	}
	uc := NewUseCase(reservations, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), newTestRequest(resource, []int{5}))
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestExecute_SlotTakenConcurrently(t *testing.T) {
	// Нарушение уникального индекса при записи трактуется как занятый слот
	resource := newTestResource(t)
	reservations := &fakeReservationRepo{createErr: reservationRepo.ErrSlotTaken}
	uc := NewUseCase(reservations, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), newTestRequest(resource, []int{7}))
	require.ErrorIs(t, err, ErrSlotUnavailable)

	var slotErr *SlotUnavailableError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, 7, slotErr.SlotID)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeResourceRepo{}, fakeTxManager{}, nopLogger{})

	req := &Request{
		Actor:      domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer},
		ResourceID: uuid.New(),
		Date:       monday,
		SlotIDs:    []int{7},
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_EmptySelection(t *testing.T) {
	resource := newTestResource(t)
	uc := NewUseCase(&fakeReservationRepo{}, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), newTestRequest(resource, nil))
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestExecute_InvalidSlotID(t *testing.T) {
	resource := newTestResource(t)
	uc := NewUseCase(&fakeReservationRepo{}, &fakeResourceRepo{resource: resource}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), newTestRequest(resource, []int{24}))
	assert.ErrorIs(t, err, ErrInvalidSlotID)

	_, err = uc.Execute(context.Background(), newTestRequest(resource, []int{-1}))
	assert.ErrorIs(t, err, ErrInvalidSlotID)
}
