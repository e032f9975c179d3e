package credit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// Repository репозиторий пользовательских кредитов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кредитов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Issue создает кредит пользователю на полную сумму отменённого бронирования
func (r *Repository) Issue(ctx context.Context, c *domain.UserCredit) (*domain.UserCredit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_credits").
		Columns(
			"user_id",
			"amount",
			"origin_reservation_id",
			"status",
		).
		Values(
			c.UserID,
			c.Amount,
			c.OriginReservationID,
			domain.CreditIssued,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Issue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Issue - execute insert: %v", ErrExecQuery, err)
	}

	c.Status = domain.CreditIssued
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// Redeem помечает кредит использованным. Защитное условие в WHERE
// гарантирует, что кредит принадлежит пользователю и ещё не потрачен;
// иначе возвращается ErrCreditNotRedeemable.
func (r *Repository) Redeem(ctx context.Context, creditID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("user_credits").
		Set("status", domain.CreditUsed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": creditID}).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"status": domain.CreditIssued}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Redeem - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Redeem - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Redeem - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCreditNotRedeemable
	}

	return nil
}
