package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const pgUniqueViolation = "23505"

// Repository репозиторий расписаний корта: базовые недельные окна
// и спецрасписания на конкретные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// WeeklyWindows получает окна базового расписания корта на день недели,
// отсортированные по времени начала
func (r *Repository) WeeklyWindows(ctx context.Context, courtID int64, weekday time.Weekday) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := weeklyColumns().
		From("weekly_schedules").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: WeeklyWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: WeeklyWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWeekly(rows)
}

// WeeklyScheduleByCourt получает все окна базового расписания корта
// (для административного просмотра)
func (r *Repository) WeeklyScheduleByCourt(ctx context.Context, courtID int64) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := weeklyColumns().
		From("weekly_schedules").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: WeeklyScheduleByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: WeeklyScheduleByCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWeekly(rows)
}

// OverridesByDate получает все спецрасписания корта на дату одним запросом.
// Правила доступности и ценообразования фильтруют их уже в памяти.
func (r *Repository) OverridesByDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"court_id",
		"override_date",
		"start_time",
		"end_time",
		"price",
		"status",
		"created_at",
		"updated_at",
	).
		From("date_overrides").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"override_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: OverridesByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OverridesByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		var o domain.DateOverride
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&o.ID,
			&o.CourtID,
			&o.Date,
			&o.StartTime,
			&o.EndTime,
			&o.Price,
			&o.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: OverridesByDate - scan row: %v", ErrScanRow, err)
		}

		if o.EndTime.Minutes() == 0 {
			o.EndTime = types.EndOfDay
		}
		o.CreatedAt = createdAt.Time
		o.UpdatedAt = updatedAt.Time

		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: OverridesByDate - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// CreateOverride создает спецрасписание на дату.
// Дубликат (court_id, override_date, start_time, end_time) транслируется
// в ErrDuplicateOverride.
func (r *Repository) CreateOverride(ctx context.Context, o *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns(
			"court_id",
			"override_date",
			"start_time",
			"end_time",
			"price",
			"status",
		).
		Values(
			o.CourtID,
			o.Date,
			o.StartTime,
			o.EndTime,
			o.Price,
			o.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateOverride
		}
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %v", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// ReplaceWeeklySchedule заменяет все окна базового расписания корта.
// Вызывается внутри транзакции (delete + insert должны быть атомарны).
func (r *Repository) ReplaceWeeklySchedule(ctx context.Context, courtID int64, windows []*domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("weekly_schedules").
		Where(squirrel.Eq{"court_id": courtID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - execute delete: %v", ErrExecQuery, err)
	}

	for _, w := range windows {
		insertQuery, insertArgs, err := psqlbuilder.Insert("weekly_schedules").
			Columns("court_id", "weekday", "start_time", "end_time", "base_price").
			Values(courtID, int(w.Weekday), w.StartTime, w.EndTime, w.BasePrice).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceWeeklySchedule - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&w.ID, &createdAt, &updatedAt)
		if err != nil {
			return fmt.Errorf("%w: ReplaceWeeklySchedule - execute insert: %v", ErrExecQuery, err)
		}

		w.CourtID = courtID
		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
	}

	return nil
}

// weeklyColumns общий набор колонок окна базового расписания
func weeklyColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"court_id",
		"weekday",
		"start_time",
		"end_time",
		"base_price",
		"created_at",
		"updated_at",
	)
}

// scanWeekly сканирует окна базового расписания.
// Конец окна "00:00" нормализуется в конец суток (спецслучай "до полуночи").
func (r *Repository) scanWeekly(rows *sql.Rows) ([]*domain.WeeklySchedule, error) {
	windows := make([]*domain.WeeklySchedule, 0)

	for rows.Next() {
		var w domain.WeeklySchedule
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.CourtID,
			&weekday,
			&w.StartTime,
			&w.EndTime,
			&w.BasePrice,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWeekly - scan row: %v", ErrScanRow, err)
		}

		w.Weekday = time.Weekday(weekday)
		if w.EndTime.Minutes() == 0 {
			w.EndTime = types.EndOfDay
		}
		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time

		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWeekly - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
