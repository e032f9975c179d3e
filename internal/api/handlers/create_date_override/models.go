package create_date_override

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule/models"
)

// CreateOverrideRequest HTTP request model
type CreateOverrideRequest struct {
	Date      string   `json:"date"`      // "2026-03-15"
	StartTime string   `json:"startTime"` // "08:00"
	EndTime   string   `json:"endTime"`   // "22:00"
	Price     *float64 `json:"price,omitempty"`
	Status    string   `json:"status"` // available | blocked | maintenance
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateOverrideRequest) ToServiceRequest(courtID int64) *models.CreateOverrideRequest {
	return &models.CreateOverrideRequest{
		CourtID:   courtID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Price:     r.Price,
		Status:    r.Status,
	}
}
