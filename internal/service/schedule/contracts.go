package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	WeeklyScheduleByCourt(ctx context.Context, courtID int64) ([]*domain.WeeklySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, courtID int64, windows []*domain.WeeklySchedule) error
	OverridesByDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.DateOverride, error)
	CreateOverride(ctx context.Context, o *domain.DateOverride) (*domain.DateOverride, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// ServiceRepository интерфейс репозитория услуг окон расписания
type ServiceRepository interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]*domain.ScheduleService, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
