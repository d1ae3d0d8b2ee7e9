package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
	"github.com/maverk/IndoorBookingService/internal/service/pricing/models"
)

// Service сервис для управления правилами ценообразования
type Service struct {
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса ценообразования
func NewService(
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// ListRules возвращает все правила ценообразования ресурса
// Правила идут в порядке добавления - в этом же порядке они применяются
// при расчете цены слота
func (s *Service) ListRules(ctx context.Context, resourceID uuid.UUID) (*models.RuleListResponse, error) {
	s.logger.Info("ListRules: fetching rules for resource=%s", resourceID)

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListRules: successfully fetched %d rules for resource=%s", len(resource.PricingRules), resourceID)
	return models.FromDomainRuleList(resource, resource.PricingRules), nil
}

// AddRule добавляет новое правило ценообразования к ресурсу
// Доступно только владельцу ресурса
//
// Правило отклоняется целиком, если хотя бы одна пара (день, слот)
// уже покрыта существующим правилом. В RuleConflictError возвращается
// полный список пересечений.
func (s *Service) AddRule(ctx context.Context, actor domain.Actor, resourceID uuid.UUID, req *models.AddRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("AddRule: adding rule to resource=%s by user=%s, days=%v, slots=%v, price=%d",
		resourceID, actor.UserID, req.DayNames, req.SlotIDs, req.PriceCents)

	rule, err := domain.NewPricingRule(resourceID, req.DayNames, req.SlotIDs, req.PriceCents)
	if err != nil {
		s.logger.Warn("AddRule: invalid rule for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	// Проверка конфликтов и вставка выполняются в одной serializable
	// транзакции, иначе два параллельных AddRule могут оба пройти проверку
	var created *domain.PricingRule
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		resource, err := s.getResource(ctx, resourceID)
		if err != nil {
			return err
		}

		if err := s.checkOwnerAccess(resource, actor); err != nil {
			return err
		}

		if conflicts := domain.CheckRuleConflicts(rule.DayNames, rule.SlotIDs, resource.PricingRules); len(conflicts) > 0 {
			s.logger.Warn("AddRule: rule conflicts with %d existing rules for resource=%s", len(conflicts), resourceID)
			return &RuleConflictError{Conflicts: conflicts}
		}

		created, err = s.resourceRepo.AddRule(ctx, &rule)
		if err != nil {
			s.logger.Error("AddRule: repository error for resource=%s: %v", resourceID, err)
			return fmt.Errorf("%w: AddRule - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddRule: successfully added rule id=%s to resource=%s", created.ID, resourceID)
	return models.FromDomainRule(created), nil
}

// DeleteRule удаляет правило ценообразования по его ID
// Доступно только владельцу ресурса
func (s *Service) DeleteRule(ctx context.Context, actor domain.Actor, resourceID, ruleID uuid.UUID) error {
	s.logger.Info("DeleteRule: deleting rule id=%s from resource=%s by user=%s", ruleID, resourceID, actor.UserID)

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(resource, actor); err != nil {
		return err
	}

	if err := s.resourceRepo.DeleteRule(ctx, resourceID, ruleID); err != nil {
		if errors.Is(err, resourceRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%s not found for resource=%s", ruleID, resourceID)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%s: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRule: successfully deleted rule id=%s from resource=%s", ruleID, resourceID)
	return nil
}

// Вспомогательные методы

func (s *Service) getResource(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("getResource: resource id=%s not found", resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("getResource: repository error for resource id=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: getResource - repository error: %v", ErrInternal, err)
	}
	return resource, nil
}

// checkOwnerAccess проверяет, что актор является владельцем ресурса
func (s *Service) checkOwnerAccess(resource *domain.Resource, actor domain.Actor) error {
	if !actor.IsOwner() || !resource.IsOwnedBy(actor.UserID) {
		s.logger.Warn("checkOwnerAccess: user=%s is not the owner of resource=%s", actor.UserID, resource.ID)
		return ErrAccessDenied
	}
	return nil
}
