package get_slot_grid

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getSlotGrid "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_slot_grid"
)

// SlotResponse один слот сетки
type SlotResponse struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "11:00", "24:00" для конца суток
	Price     float64 `json:"price"`
	Status    string  `json:"status"` // available | booked | closed
}

// SlotGridResponse HTTP response model
type SlotGridResponse struct {
	CourtID int64          `json:"courtId"`
	Date    string         `json:"date"`
	Mode    string         `json:"mode"`
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	out := &SlotGridResponse{
		CourtID: resp.CourtID,
		Date:    resp.Date.Format(domain.DateFormat),
		Mode:    string(resp.Mode),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Price:     slot.Price,
			Status:    string(slot.Status),
		})
	}
	return out
}
