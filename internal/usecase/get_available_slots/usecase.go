package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/maverk/IndoorBookingService/internal/domain"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
	"github.com/maverk/IndoorBookingService/pkg/ptr"
)

// UseCase use case для получения расписания ресурса на день:
// доступность и цена каждого из 24 слотов
type UseCase struct {
	reservationRepo ReservationRepository
	resourceRepo    ResourceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	resourceRepo ResourceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения расписания на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s, date=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс с правилами ценообразования
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%s not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 3. Получаем все активные брони ресурса на эту дату
	filter := domain.ResourceReservationsFilter{
		ResourceID:      req.ResourceID,
		Date:            ptr.Ptr(req.Date),
		IncludeInactive: false, // Отменённые и отклонённые брони слот не занимают
	}

	reservations, err := uc.reservationRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Строим расписание: доступность + цена каждого слота
	slots, err := buildDaySchedule(resource, req.Date, reservations)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build day schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to build day schedule: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: built schedule for resource=%s, date=%s, rules=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), len(resource.PricingRules))

	return &Response{
		ResourceID:     req.ResourceID,
		Date:           req.Date,
		BasePriceCents: resource.BasePriceCents,
		Slots:          slots,
	}, nil
}
