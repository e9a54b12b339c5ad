package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/pkg/dbmetrics"
	"github.com/m04kA/WatReservationService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"temple_id",
	"requester_id",
	"reservation_date",
	"duration",
	"cremation_date",
	"status",
	"sender",
	"addons",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование, присваивая ему ID и временные метки.
// Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	addons := res.Addons
	if addons == nil {
		addons = []string{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"temple_id",
			"requester_id",
			"reservation_date",
			"duration",
			"cremation_date",
			"status",
			"sender",
			"addons",
			"price",
		).
		Values(
			res.ID,
			res.TempleID,
			res.RequesterID,
			res.ReservationDate,
			res.Duration,
			res.CremationDate,
			res.Status,
			res.Sender,
			pq.Array(addons),
			res.Price,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	res.Addons = addons

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// GetByTemple получает все бронирования храма, упорядоченные по дате начала
func (r *Repository) GetByTemple(ctx context.Context, templeID string) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"temple_id": templeID}).
		OrderBy("reservation_date ASC", "created_at ASC")

	return r.query(ctx, "GetByTemple", builder)
}

// GetOverlapping получает бронирования храма, окно занятости которых пересекается с window.
// Внутри транзакции строки блокируются (FOR UPDATE) до её завершения.
func (r *Repository) GetOverlapping(ctx context.Context, templeID string, window domain.DateRange) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"temple_id": templeID}).
		Where(squirrel.Lt{"reservation_date": window.End}).
		Where(squirrel.Expr("reservation_date + duration > ?", window.Start)).
		OrderBy("reservation_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetOverlapping", builder)
}

// GetByCremationDate получает бронирования храма с заданной датой кремации
func (r *Repository) GetByCremationDate(ctx context.Context, templeID string, date time.Time) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"temple_id": templeID, "cremation_date": date}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetByCremationDate", builder)
}

// Update применяет patch к бронированию и возвращает обновлённую запись
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()})

	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.Sender != nil {
		builder = builder.Set("sender", *patch.Sender)
	}
	if patch.ReservationDate != nil {
		builder = builder.Set("reservation_date", domain.DateOnly(*patch.ReservationDate))
	}
	if patch.Duration != nil {
		builder = builder.Set("duration", *patch.Duration)
	}
	if patch.CremationDate != nil {
		builder = builder.Set("cremation_date", domain.DateOnly(*patch.CremationDate))
	}
	if patch.Addons != nil {
		addons := *patch.Addons
		if addons == nil {
			addons = []string{}
		}
		builder = builder.Set("addons", pq.Array(addons))
	}
	if patch.Price != nil {
		builder = builder.Set("price", *patch.Price)
	}

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return res, nil
}

// Delete удаляет бронирование (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var addons pq.StringArray

	err := row.Scan(
		&res.ID,
		&res.TempleID,
		&res.RequesterID,
		&res.ReservationDate,
		&res.Duration,
		&res.CremationDate,
		&res.Status,
		&res.Sender,
		&addons,
		&res.Price,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.ReservationDate = domain.DateOnly(res.ReservationDate)
	res.CremationDate = domain.DateOnly(res.CremationDate)
	res.Addons = []string(addons)
	if res.Addons == nil {
		res.Addons = []string{}
	}

	return &res, nil
}
