package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// Repository репозиторий дополнительных услуг, привязанных к окнам
// базового расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// MandatorySurchargeSum возвращает сумму наценок обязательных активных
// услуг для окна базового расписания
func (r *Repository) MandatorySurchargeSum(ctx context.Context, scheduleID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(surcharge), 0)").
		From("schedule_services").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		Where(squirrel.Eq{"mandatory": true}).
		Where(squirrel.Eq{"status": "active"}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MandatorySurchargeSum - build select query: %v", ErrBuildQuery, err)
	}

	var sum float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: MandatorySurchargeSum - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

// ListBySchedule возвращает все услуги окна базового расписания
func (r *Repository) ListBySchedule(ctx context.Context, scheduleID int64) ([]*domain.ScheduleService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"name",
		"surcharge",
		"mandatory",
		"status",
	).
		From("schedule_services").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.ScheduleService, 0)
	for rows.Next() {
		var s domain.ScheduleService
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.Name, &s.Surcharge, &s.Mandatory, &s.Status); err != nil {
			return nil, fmt.Errorf("%w: ListBySchedule - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySchedule - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
