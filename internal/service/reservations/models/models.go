package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// ReservationDetailResponse строка бронирования: один интервал на корте
type ReservationDetailResponse struct {
	ID        int64   `json:"id"`
	CourtID   int64   `json:"courtId"`
	Date      string  `json:"date"`      // "2026-03-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "12:00", "24:00" для конца суток
	Price     float64 `json:"price"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	PaymentMethodID int64   `json:"paymentMethodId"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`

	Details []ReservationDetailResponse `json:"details"`

	PaidAt             *string `json:"paidAt,omitempty"` // ISO 8601 format
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPendingPayment, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, details []*domain.ReservationDetail) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		PaymentMethodID: r.PaymentMethodID,
		TotalAmount:     r.TotalAmount,
		Status:          string(r.Status),
		Details:         make([]ReservationDetailResponse, 0, len(details)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	for _, d := range details {
		resp.Details = append(resp.Details, ReservationDetailResponse{
			ID:        d.ID,
			CourtID:   d.CourtID,
			Date:      d.Date.Format(domain.DateFormat),
			StartTime: d.StartTime.String(),
			EndTime:   d.EndTime.String(),
			Price:     d.Price,
		})
	}

	if r.PaidAt != nil {
		paidAt := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	resp.CancellationReason = r.CancellationReason
	if r.CancelledAt != nil {
		cancelledAt := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}
