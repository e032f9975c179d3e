package create_reservation

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// SlotPayload один выбранный слот в запросе
type SlotPayload struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "11:00"
	Price     float64 `json:"price"`
}

// CreditIDPayload значение creditId в запросе. Клиенты передают "без
// кредита" по-разному: отсутствие поля, JSON null, строка "null", 0 и -1 —
// все формы приводятся к nil ещё на границе API.
type CreditIDPayload struct {
	ID *int64
}

// UnmarshalJSON принимает число, JSON null и строку "null"
func (c *CreditIDPayload) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `"null"` {
		c.ID = nil
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	for _, sentinel := range domain.NoCreditSentinels {
		if id == sentinel {
			c.ID = nil
			return nil
		}
	}
	c.ID = &id
	return nil
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PaymentMethodID int64           `json:"paymentMethodId"`
	CourtID         int64           `json:"courtId"`
	Date            string          `json:"date"` // "2026-03-15"
	Slots           []SlotPayload   `json:"slots"`
	CreditID        CreditIDPayload `json:"creditId,omitempty"`
}

// SlotResponse один сохранённый (склеенный) интервал
type SlotResponse struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	CourtID     int64          `json:"courtId"`
	Date        string         `json:"date"`
	TotalAmount float64        `json:"totalAmount"`
	Status      string         `json:"status"`
	Slots       []SlotResponse `json:"slots"`
	CreatedAt   string         `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slots := make([]createReservation.SlotInput, 0, len(r.Slots))
	for _, s := range r.Slots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, createReservation.SlotInput{
			StartTime: start,
			EndTime:   end,
			Price:     s.Price,
		})
	}

	return &createReservation.Request{
		UserID:          userID,
		PaymentMethodID: r.PaymentMethodID,
		CourtID:         r.CourtID,
		Date:            date,
		Slots:           slots,
		CreditID:        r.CreditID.ID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		CourtID:     resp.CourtID,
		Date:        resp.Date.Format(domain.DateFormat),
		TotalAmount: resp.TotalAmount,
		Status:      resp.Status,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Price:     s.Price,
		})
	}
	return out
}
