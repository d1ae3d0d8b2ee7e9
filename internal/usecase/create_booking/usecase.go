package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/maverk/IndoorBookingService/internal/domain"
	reservationRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
	"github.com/maverk/IndoorBookingService/pkg/ptr"
)

// UseCase use case создания бронирования на один или несколько слотов
type UseCase struct {
	reservationRepo ReservationRepository
	resourceRepo    ResourceRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию и чтение с блокировкой для
// предотвращения гонки между проверкой доступности и записью броней;
// нарушение уникального индекса при записи трактуется как "слот только
// что заняли" и возвращается той же ошибкой занятого слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, resource=%s, date=%s, slots=%v",
		req.Actor.UserID, req.ResourceID, req.Date.Format(domain.DateFormat), req.SlotIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем выбор слотов (дубликаты, порядок возрастания)
	slotIDs := normalizeSlotIDs(req.SlotIDs)

	// Переменная для хранения результата
	var created []*domain.Reservation

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем ресурс с правилами ценообразования
		resource, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateBooking: resource id=%s not found", req.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get resource id=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}

		// 3.2. Получаем все активные брони ресурса на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ResourceReservationsFilter{
			ResourceID:      req.ResourceID,
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false, // Только активные брони занимают слоты
		}

		existing, err := uc.reservationRepo.GetByResourceWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 3.3. Планируем брони: доступность каждого слота + снимок цены
		drafts, err := planReservations(resource, req.Date, slotIDs, req.Actor.UserID, existing)
		if err != nil {
			uc.logger.Warn("CreateBooking: planning failed: %v", err)
			return err
		}

		// 3.4. Сохраняем все брони; транзакция гарантирует всё-или-ничего
		created = make([]*domain.Reservation, 0, len(drafts))
		for _, draft := range drafts {
			saved, err := uc.reservationRepo.Create(txCtx, draft)
			if err != nil {
				if errors.Is(err, reservationRepo.ErrSlotTaken) {
					uc.logger.Warn("CreateBooking: slot %d taken concurrently, resource=%s, date=%s",
						draft.SlotID, req.ResourceID, req.Date.Format(domain.DateFormat))
					return &SlotUnavailableError{SlotID: draft.SlotID}
				}
				uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
				return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
			}
			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created %d reservations for resource=%s, date=%s",
		len(created), req.ResourceID, req.Date.Format(domain.DateFormat))

	// Конвертируем в response
	response := &Response{
		ResourceID:   req.ResourceID,
		Date:         req.Date,
		Reservations: make([]Reservation, 0, len(created)),
	}

	for _, reservation := range created {
		slot, err := domain.SlotByID(reservation.SlotID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		response.Reservations = append(response.Reservations, Reservation{
			ID:          reservation.ID,
			SlotID:      reservation.SlotID,
			DisplayName: slot.DisplayName,
			Status:      string(reservation.Status),
			PriceCents:  reservation.PriceCents,
			CreatedAt:   reservation.CreatedAt,
		})
		response.TotalPriceCents += reservation.PriceCents
	}

	return response, nil
}
