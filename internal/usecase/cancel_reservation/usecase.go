package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	policyRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
)

const defaultCancellationReason = "cancelled by user"

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	policyRepo      PolicyRepository
	strategies      Registry
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	policyRepo PolicyRepository,
	strategies Registry,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		policyRepo:      policyRepo,
		strategies:      strategies,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Побочные эффекты выбранной стратегии и смена статуса выполняются в одной
// транзакции, статус меняется последним шагом. Отмена завершается и без
// применимой политики — просто без компенсации.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем бронирование
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Отменить можно только своё бронирование
	if reservation.UserID != req.UserID {
		uc.logger.Warn("CancelReservation: user=%d has no access to reservation id=%d",
			req.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		uc.logger.Warn("CancelReservation: reservation id=%d is already cancelled", req.ReservationID)
		return nil, ErrAlreadyCancelled
	}

	// 4. Загружаем строки бронирования
	details, err := uc.reservationRepo.GetDetails(ctx, req.ReservationID)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to get details for reservation id=%d: %v",
			req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation details: %v", ErrInternal, err)
	}

	reason := defaultCancellationReason
	if req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}

	// 5. Бронирование без строк — аномалия данных: отменяем принудительно без компенсации
	if len(details) == 0 {
		uc.logger.Error("CancelReservation: reservation id=%d has no details, force-cancelling",
			req.ReservationID)
		if err := uc.cancelWithoutCompensation(ctx, req.ReservationID, reason); err != nil {
			return nil, err
		}
		return uc.buildResponse(req.ReservationID, domain.OutcomeNoDetails, 0, nil), nil
	}

	// 6. Считаем запас времени до самого раннего слота
	now := uc.timeProvider.Now()
	earliest := domain.EarliestDetail(details)
	startsAt := earliest.StartsAt()
	if !startsAt.After(now) {
		uc.logger.Warn("CancelReservation: reservation id=%d already started at %s",
			req.ReservationID, startsAt.Format("2006-01-02 15:04"))
		return nil, ErrAlreadyStarted
	}

	// Запас в часах с точностью до минуты
	hoursAvailable := float64(int(startsAt.Sub(now).Minutes())) / 60.0

	// 7. Политики привязаны к объекту, которому принадлежит корт
	c, err := uc.courtRepo.GetByID(ctx, earliest.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Error("CancelReservation: court id=%d for reservation id=%d not found",
				earliest.CourtID, req.ReservationID)
			return nil, fmt.Errorf("%w: court not found", ErrInternal)
		}
		uc.logger.Error("CancelReservation: failed to get court id=%d: %v", earliest.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 8. Подбираем политику с наибольшим удовлетворённым порогом
	policy, err := uc.policyRepo.MostApplicable(ctx, c.FacilityID, hoursAvailable)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Info("CancelReservation: no applicable policy for facility=%d, hours=%.2f",
				c.FacilityID, hoursAvailable)
			if err := uc.cancelWithoutCompensation(ctx, req.ReservationID, reason); err != nil {
				return nil, err
			}
			return uc.buildResponse(req.ReservationID, domain.OutcomeNoPolicy, hoursAvailable, nil), nil
		}
		uc.logger.Error("CancelReservation: failed to resolve policy for facility=%d: %v",
			c.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to resolve cancellation policy: %v", ErrInternal, err)
	}

	// 9. Неизвестный тег стратегии не блокирует отмену
	strategy, ok := uc.strategies[policy.Strategy]
	if !ok {
		uc.logger.Error("CancelReservation: unknown cancellation strategy %q in policy id=%d",
			policy.Strategy, policy.ID)
		if err := uc.cancelWithoutCompensation(ctx, req.ReservationID, reason); err != nil {
			return nil, err
		}
		return uc.buildResponse(req.ReservationID, domain.OutcomeUnknownStrategy, hoursAvailable, nil), nil
	}

	uc.logger.Info("CancelReservation: applying policy id=%d (hours_limit=%.1f, strategy=%s), hours=%.2f",
		policy.ID, policy.HoursLimit, policy.Strategy, hoursAvailable)

	// 10. Побочные эффекты стратегии и смена статуса — в одной транзакции
	var outcome domain.CancellationOutcomeTag
	var credit *domain.UserCredit

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		outcome, credit, err = strategy.Execute(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CancelReservation: strategy %s failed for reservation id=%d: %v",
				policy.Strategy, req.ReservationID, err)
			return err
		}

		// Смена статуса всегда последней, чтобы сбой стратегии откатывал всё
		if err := uc.reservationRepo.Cancel(txCtx, req.ReservationID, reason); err != nil {
			uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v",
				req.ReservationID, err)
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: reservation id=%d cancelled, outcome=%s",
		req.ReservationID, outcome)

	return uc.buildResponse(req.ReservationID, outcome, hoursAvailable, credit), nil
}

// cancelWithoutCompensation отменяет бронирование без побочных эффектов стратегий
func (uc *UseCase) cancelWithoutCompensation(ctx context.Context, reservationID int64, reason string) error {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.reservationRepo.Cancel(txCtx, reservationID, reason)
	})
	if err != nil {
		uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}
	return nil
}

// buildResponse собирает ответ usecase
func (uc *UseCase) buildResponse(reservationID int64, outcome domain.CancellationOutcomeTag, hours float64, credit *domain.UserCredit) *Response {
	resp := &Response{
		ReservationID:  reservationID,
		Status:         string(domain.StatusCancelled),
		Outcome:        outcome,
		HoursAvailable: hours,
	}
	if credit != nil {
		resp.CreditID = &credit.ID
		resp.CreditAmount = &credit.Amount
	}
	return resp
}
