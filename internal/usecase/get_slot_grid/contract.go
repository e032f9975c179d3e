package get_slot_grid

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	WeeklyWindows(ctx context.Context, courtID int64, weekday time.Weekday) ([]*domain.WeeklySchedule, error)
	OverridesByDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.DateOverride, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetConfirmedDetailsByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.ReservationDetail, error)
}

// ServiceRepository интерфейс репозитория услуг расписания
type ServiceRepository interface {
	MandatorySurchargeSum(ctx context.Context, scheduleID int64) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
