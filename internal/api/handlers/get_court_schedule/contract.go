package get_court_schedule

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetCourtSchedule(ctx context.Context, courtID int64) (*models.CourtScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
