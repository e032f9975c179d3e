package domain

import "time"

// CourtStatus represents the lifecycle state of a court
type CourtStatus string

const (
	CourtActive   CourtStatus = "active"
	CourtInactive CourtStatus = "inactive"
)

// Court represents a single bookable playing surface within a facility
type Court struct {
	ID         int64
	FacilityID int64
	Name       string
	SportType  string
	Status     CourtStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true if the court accepts bookings
func (c *Court) IsActive() bool {
	return c.Status == CourtActive
}
