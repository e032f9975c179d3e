package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation header
type ReservationStatus string

const (
	StatusPendingPayment ReservationStatus = "pending_payment"
	StatusConfirmed      ReservationStatus = "confirmed"
	StatusCancelled      ReservationStatus = "cancelled"
)

// Reservation represents a reservation header. It owns one or more
// ReservationDetail rows created atomically with it.
type Reservation struct {
	ID              int64
	UserID          int64
	PaymentMethodID int64
	TotalAmount     float64
	Status          ReservationStatus
	PaidAt          *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation occupies its slots
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPendingPayment || r.Status == StatusConfirmed
}

// ReservationDetail represents one booked time range on a court.
// Detail rows are immutable once written; only the parent header status
// changes on cancellation.
type ReservationDetail struct {
	ID            int64
	ReservationID int64
	CourtID       int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         float64
	CreatedAt     time.Time
}

// StartsAt returns the absolute start timestamp of the detail
func (d *ReservationDetail) StartsAt() time.Time {
	minutes := d.StartTime.Minutes()
	return time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(),
		minutes/60, minutes%60, 0, 0, d.Date.Location())
}

// Overlaps returns true if the detail strictly overlaps the [start, end)
// range. Touching endpoints do not conflict.
func (d *ReservationDetail) Overlaps(start, end types.TimeString) bool {
	return d.StartTime.IsBefore(end) && d.EndTime.IsAfter(start)
}

// EarliestDetail returns the detail with the earliest (date, start time),
// or nil for an empty list.
func EarliestDetail(details []*ReservationDetail) *ReservationDetail {
	var earliest *ReservationDetail
	for _, d := range details {
		if earliest == nil || d.StartsAt().Before(earliest.StartsAt()) {
			earliest = d
		}
	}
	return earliest
}
