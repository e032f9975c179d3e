package cancel_reservation

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// Request запрос на отмену бронирования
type Request struct {
	ReservationID int64
	UserID        int64
	Reason        *string
}

// Response итог отмены бронирования
type Response struct {
	ReservationID  int64
	Status         string
	Outcome        domain.CancellationOutcomeTag
	HoursAvailable float64

	// CreditID и CreditAmount заполнены только при исходе full_credit
	CreditID     *int64
	CreditAmount *float64
}
