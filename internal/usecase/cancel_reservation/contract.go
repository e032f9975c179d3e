package cancel_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetDetails(ctx context.Context, reservationID int64) ([]*domain.ReservationDetail, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	MostApplicable(ctx context.Context, facilityID int64, hoursAvailable float64) (*domain.CancellationPolicy, error)
}

// CreditRepository интерфейс репозитория кредитов пользователей
type CreditRepository interface {
	Issue(ctx context.Context, c *domain.UserCredit) (*domain.UserCredit, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
