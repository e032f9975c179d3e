package domain

import "math"

// Slot geometry
const (
	// SlotDurationMinutes фиксированный шаг сетки бронирования
	SlotDurationMinutes = 60

	// HoursPerDay слотов в суточной сетке полного дня
	HoursPerDay = 24
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxScheduleWindowsPerDay    = 8
)

// NoCreditSentinel значения creditId, означающие "кредит не используется"
var NoCreditSentinels = []int64{0, -1}

// RoundPrice округляет цену до 2 знаков после запятой
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
