package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/pkg/dbmetrics"
	"github.com/maverk/IndoorBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с ресурсами и их правилами ценообразования.
// Правила хранятся отдельной таблицей и всегда читаются в порядке создания —
// этот порядок определяет tie-break при разрешении цены.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый ресурс
func (r *Repository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"owner_id",
			"name",
			"description",
			"location",
			"media_kind",
			"media_urls",
			"base_price_cents",
		).
		Values(
			resource.OwnerID,
			resource.Name,
			resource.Description,
			resource.Location,
			resource.Media.Kind,
			pq.Array(resource.Media.URLs),
			resource.BasePriceCents,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	resource.CreatedAt = createdAt.Time

	return resource, nil
}

// GetByID получает ресурс вместе с его правилами ценообразования
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"description",
		"location",
		"media_kind",
		"media_urls",
		"base_price_cents",
		"created_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var resource domain.Resource
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.OwnerID,
		&resource.Name,
		&resource.Description,
		&resource.Location,
		&resource.Media.Kind,
		pq.Array(&resource.Media.URLs),
		&resource.BasePriceCents,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	resource.CreatedAt = createdAt.Time

	rules, err := r.GetRules(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.PricingRules = rules

	return &resource, nil
}

// ListByOwner получает все ресурсы владельца (без правил ценообразования)
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"description",
		"location",
		"media_kind",
		"media_urls",
		"base_price_cents",
		"created_at",
	).
		From("resources").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		var resource domain.Resource
		var createdAt sql.NullTime

		err := rows.Scan(
			&resource.ID,
			&resource.OwnerID,
			&resource.Name,
			&resource.Description,
			&resource.Location,
			&resource.Media.Kind,
			pq.Array(&resource.Media.URLs),
			&resource.BasePriceCents,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}

		resource.CreatedAt = createdAt.Time
		resources = append(resources, &resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// GetRules получает правила ценообразования ресурса в порядке создания
func (r *Repository) GetRules(ctx context.Context, resourceID uuid.UUID) ([]domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"day_names",
		"slot_ids",
		"price_cents",
		"created_at",
	).
		From("pricing_rules").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.PricingRule, 0)
	for rows.Next() {
		var rule domain.PricingRule
		var createdAt sql.NullTime
		var slotIDs []int64

		err := rows.Scan(
			&rule.ID,
			&rule.ResourceID,
			pq.Array(&rule.DayNames),
			pq.Array(&slotIDs),
			&rule.PriceCents,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRules - scan row: %v", ErrScanRow, err)
		}

		rule.SlotIDs = make([]int, len(slotIDs))
		for i, id := range slotIDs {
			rule.SlotIDs[i] = int(id)
		}
		rule.CreatedAt = createdAt.Time

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// AddRule сохраняет новое правило ценообразования
func (r *Repository) AddRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotIDs := make([]int64, len(rule.SlotIDs))
	for i, id := range rule.SlotIDs {
		slotIDs[i] = int64(id)
	}

	query, args, err := psqlbuilder.Insert("pricing_rules").
		Columns(
			"id",
			"resource_id",
			"day_names",
			"slot_ids",
			"price_cents",
		).
		Values(
			rule.ID,
			rule.ResourceID,
			pq.Array(rule.DayNames),
			pq.Array(slotIDs),
			rule.PriceCents,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddRule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddRule - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// DeleteRule удаляет правило ценообразования по стабильному идентификатору.
// Никак не затрагивает брони, уже оценённые по этому правилу — снимки цен
// остаются как есть.
func (r *Repository) DeleteRule(ctx context.Context, resourceID, ruleID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("pricing_rules").
		Where(squirrel.Eq{"id": ruleID, "resource_id": resourceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}
