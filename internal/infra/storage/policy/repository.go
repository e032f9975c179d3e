package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// Repository репозиторий политик отмены
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик отмены
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// MostApplicable возвращает политику отмены, применимую к отмене за
// hoursAvailable часов до события: активную политику комплекса с
// максимальным hours_limit, не превышающим hoursAvailable.
// Если hoursAvailable меньше всех порогов, возвращает ErrPolicyNotFound.
func (r *Repository) MostApplicable(ctx context.Context, facilityID int64, hoursAvailable float64) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"facility_id",
		"hours_limit",
		"strategy",
		"status",
		"created_at",
		"updated_at",
	).
		From("cancellation_policies").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"status": "active"}).
		Where(squirrel.LtOrEq{"hours_limit": hoursAvailable}).
		OrderBy("hours_limit DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MostApplicable - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.CancellationPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.FacilityID,
		&p.HoursLimit,
		&p.Strategy,
		&p.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MostApplicable - scan policy: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
