package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Rule одно правило ценообразования. Возвращает цену окна или ok=false,
// если правило неприменимо (ожидаемый исход, не ошибка). Ошибка
// возвращается только для настоящих сбоев и пробелов конфигурации.
type Rule interface {
	Name() string
	Price(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) (price float64, ok bool, err error)
}

// OverrideStore интерфейс источника спецрасписаний на дату
type OverrideStore interface {
	OverridesByDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.DateOverride, error)
}

// ScheduleStore интерфейс источника окон базового расписания
type ScheduleStore interface {
	WeeklyWindows(ctx context.Context, courtID int64, weekday time.Weekday) ([]*domain.WeeklySchedule, error)
}

// ServiceStore интерфейс источника наценок обязательных услуг
type ServiceStore interface {
	MandatorySurchargeSum(ctx context.Context, scheduleID int64) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
