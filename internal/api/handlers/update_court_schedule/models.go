package update_court_schedule

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Windows []models.WeeklyWindowPayload `json:"windows"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(courtID int64) *models.ReplaceWeeklyScheduleRequest {
	return &models.ReplaceWeeklyScheduleRequest{
		CourtID: courtID,
		Windows: r.Windows,
	}
}
