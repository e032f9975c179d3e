package cancel_reservation

import (
	cancelReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID  int64    `json:"reservationId"`
	Status         string   `json:"status"`
	Outcome        string   `json:"outcome"` // full_credit | physical_refund | no_policy | no_details | unknown_strategy
	HoursAvailable float64  `json:"hoursAvailable"`
	CreditID       *int64   `json:"creditId,omitempty"`
	CreditAmount   *float64 `json:"creditAmount,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ReservationID:  resp.ReservationID,
		Status:         resp.Status,
		Outcome:        string(resp.Outcome),
		HoursAvailable: resp.HoursAvailable,
		CreditID:       resp.CreditID,
		CreditAmount:   resp.CreditAmount,
	}
}
