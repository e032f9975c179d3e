package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Rule одна независимая проверка доступности временного окна на корте.
// Каждое правило опрашивает один источник конфликтов (подтверждённые
// бронирования, блокировки спецрасписания).
type Rule interface {
	Name() string
	IsAvailable(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) bool
}

// ReservationStore интерфейс источника строк подтверждённых бронирований
type ReservationStore interface {
	FindConfirmedOverlaps(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) ([]*domain.ReservationDetail, error)
}

// OverrideStore интерфейс источника спецрасписаний на дату
type OverrideStore interface {
	OverridesByDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.DateOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
