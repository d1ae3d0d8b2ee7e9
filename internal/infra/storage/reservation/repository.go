package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/pkg/dbmetrics"
	"github.com/maverk/IndoorBookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL "unique_violation"
const pgUniqueViolation = "23505"

// reservationColumns полный набор колонок таблицы reservations
var reservationColumns = []string{
	"id",
	"resource_id",
	"customer_id",
	"booking_date",
	"slot_id",
	"status",
	"price_cents",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение частичного уникального индекса по (resource_id, booking_date,
// slot_id) для активных статусов превращается в ErrSlotTaken: две
// конкурентные попытки забронировать один слот могли обе увидеть его
// свободным, но записать бронь успеет только одна.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"resource_id",
			"customer_id",
			"booking_date",
			"slot_id",
			"status",
			"price_cents",
		).
		Values(
			reservation.ResourceID,
			reservation.CustomerID,
			reservation.Date,
			reservation.SlotID,
			reservation.Status,
			reservation.PriceCents,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByCustomerID получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID uuid.UUID, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, slot_id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByResourceWithFilter получает бронирования ресурса с фильтрацией по
// дате, статусу и активности.
//
// Внутри транзакции выборка на конкретную дату блокируется FOR UPDATE —
// это чтение используется usecase создания бронирования для закрытия гонки
// check-then-act между проверкой доступности и записью новых броней.
func (r *Repository) GetByResourceWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"resource_id": filter.ResourceID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		terminalStatusStrings := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminalStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatusStrings})
	}

	if filter.Date != nil {
		// Для конкретной даты сортируем по слотам (ASC)
		selectBuilder = selectBuilder.OrderBy("slot_id ASC")
	} else {
		// Для всех бронирований сортируем по дате и слоту (DESC - сначала новые)
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, slot_id DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CountByStatus подсчитывает бронирования по статусам.
// Если resourceID указан, считает только бронирования этого ресурса.
func (r *Repository) CountByStatus(ctx context.Context, resourceID *uuid.UUID) (map[domain.ReservationStatus]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("status", "COUNT(*)").
		From("reservations").
		GroupBy("status")

	if resourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *resourceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.ReservationStatus]int64)
	for rows.Next() {
		var status domain.ReservationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в модель бронирования
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.ResourceID,
		&reservation.CustomerID,
		&reservation.Date,
		&reservation.SlotID,
		&reservation.Status,
		&reservation.PriceCents,
		&reservation.CancellationReason,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
