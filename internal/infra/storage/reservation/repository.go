package reservation

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

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями и их строками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateHeader создает заголовок бронирования.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) CreateHeader(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"payment_method_id",
			"total_amount",
			"status",
			"paid_at",
		).
		Values(
			res.UserID,
			res.PaymentMethodID,
			res.TotalAmount,
			res.Status,
			res.PaidAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateHeader - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateHeader - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// CreateDetail создает строку бронирования.
// Нарушение частичного уникального индекса (court_id, reservation_date,
// start_time, end_time) транслируется в ErrSlotTaken.
func (r *Repository) CreateDetail(ctx context.Context, detail *domain.ReservationDetail) (*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_details").
		Columns(
			"reservation_id",
			"court_id",
			"reservation_date",
			"start_time",
			"end_time",
			"price",
		).
		Values(
			detail.ReservationID,
			detail.CourtID,
			detail.Date,
			detail.StartTime,
			detail.EndTime,
			detail.Price,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDetail - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&detail.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: CreateDetail - execute insert: %v", ErrExecQuery, err)
	}

	detail.CreatedAt = createdAt.Time

	return detail, nil
}

// GetByID получает заголовок бронирования по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"payment_method_id",
		"total_amount",
		"status",
		"paid_at",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.UserID,
		&res.PaymentMethodID,
		&res.TotalAmount,
		&res.Status,
		&res.PaidAt,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// GetDetails получает строки бронирования, отсортированные по дате и времени начала
func (r *Repository) GetDetails(ctx context.Context, reservationID int64) ([]*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailColumns().
		From("reservation_details").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

// GetConfirmedDetailsByCourtAndDate получает все строки подтверждённых
// бронирований на корт и дату одним запросом (правила доступности и сетка
// фильтруют пересечения уже в памяти).
//
// Внутри транзакции добавляет FOR UPDATE OF rd для блокировки строк —
// используется при создании бронирования для предотвращения гонки.
func (r *Repository) GetConfirmedDetailsByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"rd.id",
		"rd.reservation_id",
		"rd.court_id",
		"rd.reservation_date",
		"rd.start_time",
		"rd.end_time",
		"rd.price",
		"rd.created_at",
	).
		From("reservation_details rd").
		Join("reservations res ON res.id = rd.reservation_id").
		Where(squirrel.Eq{"rd.court_id": courtID}).
		Where(squirrel.Eq{"rd.reservation_date": date}).
		Where(squirrel.Eq{"res.status": domain.StatusConfirmed}).
		OrderBy("rd.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF rd")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedDetailsByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedDetailsByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

// FindConfirmedOverlaps возвращает строки подтверждённых бронирований,
// строго пересекающиеся с [start, end). Касание границ пересечением не считается.
func (r *Repository) FindConfirmedOverlaps(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) ([]*domain.ReservationDetail, error) {
	details, err := r.GetConfirmedDetailsByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	overlaps := make([]*domain.ReservationDetail, 0)
	for _, d := range details {
		if d.Overlaps(start, end) {
			overlaps = append(overlaps, d)
		}
	}

	return overlaps, nil
}

// GetByUserID получает список бронирований пользователя.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"payment_method_id",
		"total_amount",
		"status",
		"paid_at",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.PaymentMethodID,
			&res.TotalAmount,
			&res.Status,
			&res.PaidAt,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
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

// Cancel отмечает бронирование отменённым с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
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

	// Деактивируем строки, чтобы частичный уникальный индекс освободил слоты
	deactivateQuery, deactivateArgs, err := psqlbuilder.Update("reservation_details").
		Set("active", false).
		Where(squirrel.Eq{"reservation_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return fmt.Errorf("%w: Cancel - deactivate details: %v", ErrExecQuery, err)
	}

	return nil
}

// detailColumns общий набор колонок строки бронирования
func detailColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"reservation_id",
		"court_id",
		"reservation_date",
		"start_time",
		"end_time",
		"price",
		"created_at",
	)
}

// scanDetails сканирует результаты запроса в слайс строк бронирования.
// Конец интервала "00:00" нормализуется в конец суток.
func (r *Repository) scanDetails(rows *sql.Rows) ([]*domain.ReservationDetail, error) {
	details := make([]*domain.ReservationDetail, 0)

	for rows.Next() {
		var detail domain.ReservationDetail
		var createdAt sql.NullTime

		err := rows.Scan(
			&detail.ID,
			&detail.ReservationID,
			&detail.CourtID,
			&detail.Date,
			&detail.StartTime,
			&detail.EndTime,
			&detail.Price,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetails - scan row: %v", ErrScanRow, err)
		}

		if detail.EndTime.Minutes() == 0 {
			detail.EndTime = types.EndOfDay
		}
		detail.CreatedAt = createdAt.Time

		details = append(details, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetails - rows error: %v", ErrScanRow, err)
	}

	return details, nil
}
