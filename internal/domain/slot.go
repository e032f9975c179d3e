package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/types"

// SlotStatus represents the bookability of a grid slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotClosed    SlotStatus = "closed"
)

// GridSlot represents a discrete bookable time window produced by the
// grid builder
type GridSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     float64
	Status    SlotStatus
}

// IsBookable returns true if the slot can be reserved
func (s *GridSlot) IsBookable() bool {
	return s.Status == SlotAvailable
}

// DurationMinutes returns the slot length in minutes
func (s *GridSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// RequestedSlot представляет слот, выбранный пользователем при создании
// бронирования. Смежные слоты склеиваются перед сохранением.
type RequestedSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     float64
}
