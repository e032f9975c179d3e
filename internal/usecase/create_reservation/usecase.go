package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	creditRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/credit"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	paymentClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	creditRepo      CreditRepository
	checker         AvailabilityChecker
	paymentClient   PaymentServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	creditRepo CreditRepository,
	checker AvailabilityChecker,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		creditRepo:      creditRepo,
		checker:         checker,
		paymentClient:   paymentClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Слоты склеиваются перед сохранением, итоговая сумма считается по исходным
// слотам. Проверка доступности повторяется внутри сериализуемой транзакции,
// чтобы закрыть гонку между показом сетки и фиксацией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, court=%d, date=%s, slots=%d",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), len(req.Slots))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем кредит: nil, 0 и -1 означают "без кредита"
	creditID := normalizeCreditID(req.CreditID)

	// 3. Итоговая сумма по исходным слотам
	var total float64
	for _, slot := range req.Slots {
		total += slot.Price
	}
	total = domain.RoundPrice(total)

	// 4. Склеиваем смежные слоты в минимальное число интервалов
	merged := mergeSlots(req.Slots)
	uc.logger.Info("CreateReservation: merged %d slots into %d intervals, total=%.2f",
		len(req.Slots), len(merged), total)

	// 5. Проверяем способ оплаты; недоступность PaymentService не блокирует бронирование
	if err := uc.paymentClient.VerifyPaymentMethodWithGracefulDegradation(ctx, req.UserID, req.PaymentMethodID); err != nil {
		if errors.Is(err, paymentClient.ErrPaymentMethodNotFound) {
			uc.logger.Warn("CreateReservation: payment method id=%d not found for user=%d",
				req.PaymentMethodID, req.UserID)
			return nil, ErrPaymentMethodNotFound
		}
		uc.logger.Warn("CreateReservation: payment verification degraded, continuing: %v", err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Повторная проверка доступности каждого интервала под блокировкой
		for _, interval := range merged {
			if !uc.checker.IsAvailable(txCtx, req.CourtID, req.Date, interval.StartTime, interval.EndTime) {
				uc.logger.Warn("CreateReservation: interval %s-%s on court=%d is not available",
					interval.StartTime, interval.EndTime, req.CourtID)
				return ErrSlotNotAvailable
			}
		}

		// 6.2. Создаем заголовок бронирования
		header, err := uc.reservationRepo.CreateHeader(txCtx, &domain.Reservation{
			UserID:          req.UserID,
			PaymentMethodID: req.PaymentMethodID,
			TotalAmount:     total,
			Status:          domain.StatusConfirmed,
			PaidAt:          ptr.Ptr(now),
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create header: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 6.3. Создаем строку на каждый склеенный интервал
		for _, interval := range merged {
			_, err := uc.reservationRepo.CreateDetail(txCtx, &domain.ReservationDetail{
				ReservationID: header.ID,
				CourtID:       req.CourtID,
				Date:          req.Date,
				StartTime:     interval.StartTime,
				EndTime:       interval.EndTime,
				Price:         interval.Price,
			})
			if err != nil {
				if errors.Is(err, reservationRepo.ErrSlotTaken) {
					uc.logger.Warn("CreateReservation: interval %s-%s taken by concurrent reservation",
						interval.StartTime, interval.EndTime)
					return ErrSlotNotAvailable
				}
				uc.logger.Error("CreateReservation: failed to create detail: %v", err)
				return fmt.Errorf("%w: failed to create reservation detail: %v", ErrInternal, err)
			}
		}

		// 6.4. Погашаем кредит, если он указан
		if creditID != nil {
			if err := uc.creditRepo.Redeem(txCtx, *creditID, req.UserID); err != nil {
				if errors.Is(err, creditRepo.ErrCreditNotRedeemable) {
					uc.logger.Warn("CreateReservation: credit id=%d not redeemable for user=%d",
						*creditID, req.UserID)
					return ErrCreditNotRedeemable
				}
				uc.logger.Error("CreateReservation: failed to redeem credit id=%d: %v", *creditID, err)
				return fmt.Errorf("%w: failed to redeem credit: %v", ErrInternal, err)
			}
			uc.logger.Info("CreateReservation: credit id=%d redeemed by user=%d", *creditID, req.UserID)
		}

		result = header
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, total=%.2f",
		result.ID, result.TotalAmount)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		CourtID:     req.CourtID,
		Date:        req.Date,
		TotalAmount: result.TotalAmount,
		Status:      string(result.Status),
		Slots:       merged,
		CreatedAt:   result.CreatedAt,
	}, nil
}
