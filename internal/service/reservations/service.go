package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	reservationRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	resourceRepo    ResourceRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	resourceRepo ResourceRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является владельцем ресурса
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%s", id, actor.UserID)

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkReservationAccess(ctx, reservation, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%s", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, actor domain.Actor, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%s, status=%v", actor.UserID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%s", *req.Status, actor.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, actor.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%s", len(reservations), actor.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetResourceReservations получает бронирования ресурса с гибкой фильтрацией
// Поддерживает фильтрацию по дате, статусу и включение неактивных бронирований
// Доступно только владельцу ресурса
func (s *Service) GetResourceReservations(ctx context.Context, actor domain.Actor, resourceID uuid.UUID, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetResourceReservations: fetching reservations for resource=%s, user=%s", resourceID, actor.UserID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, resourceID, actor); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter(resourceID)
	if err != nil {
		s.logger.Warn("GetResourceReservations: invalid filter for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceReservations: repository error for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetResourceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceReservations: successfully fetched %d reservations for resource=%s", len(reservations), resourceID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование в статусе
// pending или confirmed. Отменённый слот снова становится доступным.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, reservationID uuid.UUID, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%s", reservationID, actor.UserID)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	// Отменить может только автор бронирования
	if reservation.CustomerID != actor.UserID {
		s.logger.Warn("Cancel: access denied for user=%s to cancel reservation id=%s", actor.UserID, reservationID)
		return ErrAccessDenied
	}

	// Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%s not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%s: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", reservationID)
	return nil
}

// UpdateStatus обновляет статус бронирования - решение владельца ресурса
// Разрешены только переходы pending -> confirmed и pending -> rejected
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, reservationID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%s to status=%s by user=%s",
		reservationID, req.Status, actor.UserID)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	// Проверяем права доступа (только владелец ресурса)
	if err := s.checkOwnerAccess(ctx, reservation.ResourceID, actor); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%s", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for reservation id=%s",
			reservation.Status, newStatus, reservationID)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%s not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%s to status=%s", reservationID, newStatus)
	return nil
}

// Stats возвращает сводку бронирований по статусам
// Без resourceID считает по всем ресурсам, с resourceID - по одному
// (в этом случае доступно только владельцу ресурса)
func (s *Service) Stats(ctx context.Context, actor domain.Actor, resourceID *uuid.UUID) (*models.StatsResponse, error) {
	s.logger.Info("Stats: fetching reservation stats for user=%s, resource=%v", actor.UserID, resourceID)

	if resourceID != nil {
		if err := s.checkOwnerAccess(ctx, *resourceID, actor); err != nil {
			return nil, err
		}
	} else if !actor.IsOwner() {
		s.logger.Warn("Stats: access denied for user=%s, owner role required", actor.UserID)
		return nil, ErrAccessDenied
	}

	counts, err := s.reservationRepo.CountByStatus(ctx, resourceID)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Stats: successfully computed stats for user=%s", actor.UserID)
	return models.FromDomainCounts(resourceID, counts), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getReservation: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getReservation: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getReservation - repository error: %v", ErrInternal, err)
	}
	return reservation, nil
}

// checkReservationAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит своё бронирование, владелец ресурса - все бронирования ресурса
func (s *Service) checkReservationAccess(ctx context.Context, reservation *domain.Reservation, actor domain.Actor) error {
	// Если пользователь автор бронирования - доступ разрешён
	if reservation.CustomerID == actor.UserID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, reservation.ResourceID, actor); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что актор является владельцем ресурса
func (s *Service) checkOwnerAccess(ctx context.Context, resourceID uuid.UUID, actor domain.Actor) error {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("checkOwnerAccess: resource id=%s not found", resourceID)
			return ErrResourceNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get resource id=%s: %v", resourceID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get resource: %v", ErrInternal, err)
	}

	if !actor.IsOwner() || !resource.IsOwnedBy(actor.UserID) {
		s.logger.Warn("checkOwnerAccess: user=%s is not the owner of resource=%s", actor.UserID, resourceID)
		return ErrAccessDenied
	}

	s.logger.Info("checkOwnerAccess: user=%s is owner of resource=%s", actor.UserID, resourceID)
	return nil
}
