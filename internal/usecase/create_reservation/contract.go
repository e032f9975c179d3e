package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CreateHeader(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CreateDetail(ctx context.Context, detail *domain.ReservationDetail) (*domain.ReservationDetail, error)
}

// CreditRepository интерфейс репозитория кредитов пользователей
type CreditRepository interface {
	Redeem(ctx context.Context, creditID, userID int64) error
}

// AvailabilityChecker интерфейс проверки доступности окна.
// Вызывается внутри сериализуемой транзакции для закрытия гонки
// между показом сетки и фиксацией бронирования.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) bool
}

// PaymentServiceClient интерфейс клиента для PaymentService
type PaymentServiceClient interface {
	VerifyPaymentMethodWithGracefulDegradation(ctx context.Context, userID, paymentMethodID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
