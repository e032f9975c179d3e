package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модели

// WeeklyWindowPayload одно окно недельного расписания в запросе
type WeeklyWindowPayload struct {
	Weekday   int     `json:"weekday"`   // 0 = воскресенье ... 6 = суббота
	StartTime string  `json:"startTime"` // "08:00"
	EndTime   string  `json:"endTime"`   // "22:00", "24:00" для конца суток
	BasePrice float64 `json:"basePrice"`
}

// ReplaceWeeklyScheduleRequest запрос на полную замену недельного расписания корта
type ReplaceWeeklyScheduleRequest struct {
	CourtID int64                 `json:"courtId"`
	Windows []WeeklyWindowPayload `json:"windows"`
}

// CreateOverrideRequest запрос на создание спецрасписания на дату
type CreateOverrideRequest struct {
	CourtID   int64    `json:"courtId"`
	Date      string   `json:"date"`      // "2026-03-15"
	StartTime string   `json:"startTime"` // "08:00"
	EndTime   string   `json:"endTime"`   // "22:00"
	Price     *float64 `json:"price,omitempty"`
	Status    string   `json:"status"` // available | blocked | maintenance
}

// Response модели

// ScheduleServiceResponse услуга, привязанная к окну расписания
type ScheduleServiceResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Surcharge float64 `json:"surcharge"`
	Mandatory bool    `json:"mandatory"`
	Status    string  `json:"status"`
}

// WeeklyWindowResponse одно окно недельного расписания
type WeeklyWindowResponse struct {
	ID        int64                     `json:"id"`
	Weekday   int                       `json:"weekday"`
	StartTime string                    `json:"startTime"`
	EndTime   string                    `json:"endTime"`
	BasePrice float64                   `json:"basePrice"`
	Services  []ScheduleServiceResponse `json:"services,omitempty"`
}

// CourtScheduleResponse недельное расписание корта
type CourtScheduleResponse struct {
	CourtID int64                  `json:"courtId"`
	Windows []WeeklyWindowResponse `json:"windows"`
}

// OverrideResponse спецрасписание на дату
type OverrideResponse struct {
	ID        int64     `json:"id"`
	CourtID   int64     `json:"courtId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Price     *float64  `json:"price,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainWeeklySchedule конвертирует domain модель в DTO.
// services — услуги окон, сгруппированные по schedule_id.
func FromDomainWeeklySchedule(courtID int64, windows []*domain.WeeklySchedule, services map[int64][]*domain.ScheduleService) *CourtScheduleResponse {
	resp := &CourtScheduleResponse{
		CourtID: courtID,
		Windows: make([]WeeklyWindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		window := WeeklyWindowResponse{
			ID:        w.ID,
			Weekday:   int(w.Weekday),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			BasePrice: w.BasePrice,
		}
		for _, s := range services[w.ID] {
			window.Services = append(window.Services, ScheduleServiceResponse{
				ID:        s.ID,
				Name:      s.Name,
				Surcharge: s.Surcharge,
				Mandatory: s.Mandatory,
				Status:    s.Status,
			})
		}
		resp.Windows = append(resp.Windows, window)
	}
	return resp
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.DateOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		ID:        o.ID,
		CourtID:   o.CourtID,
		Date:      o.Date.Format(domain.DateFormat),
		StartTime: o.StartTime.String(),
		EndTime:   o.EndTime.String(),
		Price:     o.Price,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

// ToDomainWindow конвертирует payload в domain модель
func (p *WeeklyWindowPayload) ToDomainWindow(courtID int64) (*domain.WeeklySchedule, error) {
	start, err := types.NewTimeStringFromString(p.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(p.EndTime)
	if err != nil {
		return nil, err
	}
	return &domain.WeeklySchedule{
		CourtID:   courtID,
		Weekday:   time.Weekday(p.Weekday),
		StartTime: start,
		EndTime:   end,
		BasePrice: p.BasePrice,
	}, nil
}
