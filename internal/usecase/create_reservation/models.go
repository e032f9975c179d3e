package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// SlotInput слот, выбранный пользователем в сетке
type SlotInput struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     float64
}

// Request запрос на создание бронирования
type Request struct {
	UserID          int64
	PaymentMethodID int64
	CourtID         int64
	Date            time.Time
	Slots           []SlotInput

	// CreditID кредит для погашения; nil, 0 и -1 означают "без кредита"
	CreditID *int64
}

// Response созданное бронирование с итоговыми (склеенными) интервалами
type Response struct {
	ID          int64
	UserID      int64
	CourtID     int64
	Date        time.Time
	TotalAmount float64
	Status      string
	Slots       []*domain.RequestedSlot
	CreatedAt   time.Time
}
