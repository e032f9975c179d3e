package cancel_reservation

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Strategy исполняет побочные эффекты одного способа компенсации при отмене.
// Смена статуса бронирования стратегии не принадлежит — её выполняет usecase
// последним шагом той же транзакции.
type Strategy interface {
	Tag() domain.CancellationStrategyTag
	Execute(ctx context.Context, res *domain.Reservation) (domain.CancellationOutcomeTag, *domain.UserCredit, error)
}

// Registry отображение тега политики на стратегию
type Registry map[domain.CancellationStrategyTag]Strategy

// NewDefaultRegistry создает реестр со стандартными стратегиями
func NewDefaultRegistry(credits CreditRepository, logger Logger) Registry {
	full := NewFullCreditStrategy(credits, logger)
	refund := NewPhysicalRefundStrategy(logger)
	return Registry{
		full.Tag():   full,
		refund.Tag(): refund,
	}
}

// FullCreditStrategy начисляет пользователю кредит на полную сумму бронирования
type FullCreditStrategy struct {
	credits CreditRepository
	logger  Logger
}

// NewFullCreditStrategy создает стратегию полного кредита
func NewFullCreditStrategy(credits CreditRepository, logger Logger) *FullCreditStrategy {
	return &FullCreditStrategy{credits: credits, logger: logger}
}

// Tag возвращает тег стратегии
func (s *FullCreditStrategy) Tag() domain.CancellationStrategyTag {
	return domain.StrategyFullCredit
}

// Execute выпускает кредит на полную сумму бронирования
func (s *FullCreditStrategy) Execute(ctx context.Context, res *domain.Reservation) (domain.CancellationOutcomeTag, *domain.UserCredit, error) {
	credit, err := s.credits.Issue(ctx, &domain.UserCredit{
		UserID:              res.UserID,
		Amount:              res.TotalAmount,
		OriginReservationID: res.ID,
		Status:              domain.CreditIssued,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to issue credit: %v", ErrInternal, err)
	}

	s.logger.Info("CancelReservation: issued credit id=%d amount=%.2f for user=%d",
		credit.ID, credit.Amount, credit.UserID)

	return domain.OutcomeFullCredit, credit, nil
}

// PhysicalRefundStrategy информационная стратегия: возврат денег выполняется
// вне сервиса, состояние БД не меняется
type PhysicalRefundStrategy struct {
	logger Logger
}

// NewPhysicalRefundStrategy создает стратегию физического возврата
func NewPhysicalRefundStrategy(logger Logger) *PhysicalRefundStrategy {
	return &PhysicalRefundStrategy{logger: logger}
}

// Tag возвращает тег стратегии
func (s *PhysicalRefundStrategy) Tag() domain.CancellationStrategyTag {
	return domain.StrategyPhysicalRefund
}

// Execute помечает отмену как подлежащую физическому возврату
func (s *PhysicalRefundStrategy) Execute(_ context.Context, res *domain.Reservation) (domain.CancellationOutcomeTag, *domain.UserCredit, error) {
	s.logger.Info("CancelReservation: reservation id=%d eligible for physical refund of %.2f",
		res.ID, res.TotalAmount)
	return domain.OutcomePhysicalRefund, nil, nil
}
