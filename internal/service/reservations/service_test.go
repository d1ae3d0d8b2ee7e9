package reservations

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
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
	"github.com/maverk/IndoorBookingService/pkg/ptr"
)

// 2024-06-10 is a Monday
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*domain.Reservation)}
}

func (f *fakeReservationRepo) add(r *domain.Reservation) *domain.Reservation {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.reservations[r.ID] = r
	return r
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return reservation, nil
}

func (f *fakeReservationRepo) GetByCustomerID(_ context.Context, customerID uuid.UUID, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.CustomerID != customerID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByResourceWithFilter(_ context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.ResourceID != filter.ResourceID {
			continue
		}
		if filter.Date != nil && !domain.IsSameDay(r.Date, *filter.Date) {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !r.IsActive() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	reservation, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now()
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id uuid.UUID, reason string) error {
	reservation, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	now := time.Now()
	reservation.Status = domain.StatusCancelled
	reservation.CancellationReason = &reason
	reservation.CancelledAt = &now
	reservation.UpdatedAt = now
	return nil
}

func (f *fakeReservationRepo) CountByStatus(_ context.Context, resourceID *uuid.UUID) (map[domain.ReservationStatus]int64, error) {
	counts := make(map[domain.ReservationStatus]int64)
	for _, r := range f.reservations {
		if resourceID != nil && r.ResourceID != *resourceID {
			continue
		}
		counts[r.Status]++
	}
	return counts, nil
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

type testEnv struct {
	svc      *Service
	repo     *fakeReservationRepo
	resource *domain.Resource
	owner    domain.Actor
	customer domain.Actor
}

func newTestEnv() *testEnv {
	ownerID := uuid.New()
	resource := &domain.Resource{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           "Court A",
		BasePriceCents: 1000,
	}

	repo := newFakeReservationRepo()
	svc := NewService(repo, &fakeResourceRepo{resource: resource}, nopLogger{})

	return &testEnv{
		svc:      svc,
		repo:     repo,
		resource: resource,
		owner:    domain.Actor{UserID: ownerID, Role: domain.RoleOwner},
		customer: domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer},
	}
}

func (e *testEnv) addReservation(slotID int, status domain.ReservationStatus) *domain.Reservation {
	return e.repo.add(&domain.Reservation{
		ResourceID: e.resource.ID,
		CustomerID: e.customer.UserID,
		Date:       monday,
		SlotID:     slotID,
		Status:     status,
		PriceCents: 1000,
	})
}

func TestGetByID_Access(t *testing.T) {
	env := newTestEnv()
	reservation := env.addReservation(5, domain.StatusPending)

	// Автор брони видит свою бронь
	resp, err := env.svc.GetByID(context.Background(), env.customer, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.ID, resp.ID)
	assert.Equal(t, "5:00 AM - 6:00 AM", resp.SlotName)

	// Владелец ресурса видит все брони ресурса
	_, err = env.svc.GetByID(context.Background(), env.owner, reservation.ID)
	require.NoError(t, err)

	// Посторонний пользователь доступа не имеет
	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}
	_, err = env.svc.GetByID(context.Background(), stranger, reservation.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetByID(context.Background(), env.customer, uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations(t *testing.T) {
	env := newTestEnv()
	env.addReservation(5, domain.StatusPending)
	env.addReservation(6, domain.StatusCancelled)

	resp, err := env.svc.GetUserReservations(context.Background(), env.customer, &models.GetUserReservationsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	// Фильтр по статусу
	resp, err = env.svc.GetUserReservations(context.Background(), env.customer, &models.GetUserReservationsRequest{
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, 5, resp.Reservations[0].SlotID)

	// Некорректный статус
	_, err = env.svc.GetUserReservations(context.Background(), env.customer, &models.GetUserReservationsRequest{
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetResourceReservations_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	env.addReservation(5, domain.StatusPending)
	env.addReservation(6, domain.StatusCancelled)

	resp, err := env.svc.GetResourceReservations(context.Background(), env.owner, env.resource.ID, &models.GetResourceReservationsRequest{})
	require.NoError(t, err)
	// По умолчанию отдаются только активные брони
	assert.Len(t, resp.Reservations, 1)

	resp, err = env.svc.GetResourceReservations(context.Background(), env.owner, env.resource.ID, &models.GetResourceReservationsRequest{
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	// Клиент списком броней ресурса не располагает
	_, err = env.svc.GetResourceReservations(context.Background(), env.customer, env.resource.ID, &models.GetResourceReservationsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	env := newTestEnv()
	reservation := env.addReservation(5, domain.StatusConfirmed)

	err := env.svc.Cancel(context.Background(), env.customer, reservation.ID, &models.CancelReservationRequest{
		CancellationReason: "план поменялся",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, reservation.Status)
	require.NotNil(t, reservation.CancellationReason)
	assert.Equal(t, "план поменялся", *reservation.CancellationReason)
	assert.NotNil(t, reservation.CancelledAt)
}

func TestCancel_OnlyAuthor(t *testing.T) {
	env := newTestEnv()
	reservation := env.addReservation(5, domain.StatusPending)

	// Даже владелец ресурса не отменяет чужую бронь - только решение confirm/reject
	err := env.svc.Cancel(context.Background(), env.owner, reservation.ID, &models.CancelReservationRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatus(t *testing.T) {
	env := newTestEnv()
	reservation := env.addReservation(5, domain.StatusRejected)

	err := env.svc.Cancel(context.Background(), env.customer, reservation.ID, &models.CancelReservationRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv()
	reservation := env.addReservation(5, domain.StatusPending)

	err := env.svc.UpdateStatus(context.Background(), env.owner, reservation.ID, &models.UpdateStatusRequest{
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, reservation.Status)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	env := newTestEnv()

	// Решение принимается только по ожидающей брони
	confirmed := env.addReservation(5, domain.StatusPending)
	require.NoError(t, env.svc.UpdateStatus(context.Background(), env.owner, confirmed.ID, &models.UpdateStatusRequest{
		Status: "confirmed",
	}))

	err := env.svc.UpdateStatus(context.Background(), env.owner, confirmed.ID, &models.UpdateStatusRequest{
		Status: "rejected",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Отмена - не решение владельца
	pending := env.addReservation(6, domain.StatusPending)
	err = env.svc.UpdateStatus(context.Background(), env.owner, pending.ID, &models.UpdateStatusRequest{
		Status: "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Неизвестный статус
	err = env.svc.UpdateStatus(context.Background(), env.owner, pending.ID, &models.UpdateStatusRequest{
		Status: "bogus",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	reservation := env.addReservation(5, domain.StatusPending)

	err := env.svc.UpdateStatus(context.Background(), env.customer, reservation.ID, &models.UpdateStatusRequest{
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestStats(t *testing.T) {
	env := newTestEnv()
	env.addReservation(5, domain.StatusPending)
	env.addReservation(6, domain.StatusPending)
	env.addReservation(7, domain.StatusConfirmed)
	env.addReservation(8, domain.StatusCancelled)

	resp, err := env.svc.Stats(context.Background(), env.owner, ptr.Ptr(env.resource.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.Total)
	assert.Equal(t, int64(2), resp.Pending)
	assert.Equal(t, int64(1), resp.Confirmed)
	assert.Equal(t, int64(0), resp.Rejected)
	assert.Equal(t, int64(1), resp.Cancelled)
}

func TestStats_AccessDenied(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Stats(context.Background(), env.customer, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.svc.Stats(context.Background(), env.customer, ptr.Ptr(env.resource.ID))
	assert.ErrorIs(t, err, ErrAccessDenied)
}
