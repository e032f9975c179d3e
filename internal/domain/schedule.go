package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// WeeklySchedule represents a recurring open-hours window for a court
// with a flat base price. Multiple non-overlapping windows per weekday
// are allowed.
type WeeklySchedule struct {
	ID        int64
	CourtID   int64
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString // EndOfDay означает "до конца суток"
	BasePrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers returns true if the window fully covers the [start, end) range
func (w *WeeklySchedule) Covers(start, end types.TimeString) bool {
	return !w.StartTime.IsAfter(start) && !w.EndTime.IsBefore(end)
}

// OverrideStatus represents the effect of a date override
type OverrideStatus string

const (
	OverrideAvailable   OverrideStatus = "available"
	OverrideBlocked     OverrideStatus = "blocked"
	OverrideMaintenance OverrideStatus = "maintenance"
)

// DateOverride represents a date-specific exception to the base schedule.
// Blocked/maintenance overrides reduce availability; an available override
// with a price replaces the base price for any slot it fully covers.
type DateOverride struct {
	ID        int64
	CourtID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     *float64 // NULL = без переопределения цены
	Status    OverrideStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the override removes availability
func (o *DateOverride) IsBlocking() bool {
	return o.Status == OverrideBlocked || o.Status == OverrideMaintenance
}

// Covers returns true if the override fully covers the [start, end) range
func (o *DateOverride) Covers(start, end types.TimeString) bool {
	return !o.StartTime.IsAfter(start) && !o.EndTime.IsBefore(end)
}

// Overlaps returns true if the override strictly overlaps the [start, end) range.
// Touching endpoints are not an overlap.
func (o *DateOverride) Overlaps(start, end types.TimeString) bool {
	return o.StartTime.IsBefore(end) && o.EndTime.IsAfter(start)
}

// ScheduleService represents an add-on service linked to a weekly schedule
// window. Mandatory active services add their surcharge to the base price.
type ScheduleService struct {
	ID         int64
	ScheduleID int64
	Name       string
	Surcharge  float64
	Mandatory  bool
	Status     string // active | inactive
}
