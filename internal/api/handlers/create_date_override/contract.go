package create_date_override

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateOverride(ctx context.Context, req *models.CreateOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
