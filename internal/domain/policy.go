package domain

import "time"

// CancellationStrategyTag identifies the monetary consequence of a
// cancellation under a policy
type CancellationStrategyTag string

const (
	StrategyFullCredit     CancellationStrategyTag = "full_credit"
	StrategyPhysicalRefund CancellationStrategyTag = "physical_refund"
)

// CancellationPolicy defines the facility rule applied when a reservation
// is cancelled hoursLimit or more hours before the event
type CancellationPolicy struct {
	ID         int64
	FacilityID int64
	HoursLimit float64
	Strategy   CancellationStrategyTag
	Status     string // active | inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppliesTo returns true if cancelling hoursAvailable hours before the
// event earns this policy's strategy
func (p *CancellationPolicy) AppliesTo(hoursAvailable float64) bool {
	return hoursAvailable >= p.HoursLimit
}

// CancellationOutcomeTag describes how a cancellation was settled
type CancellationOutcomeTag string

const (
	OutcomeFullCredit      CancellationOutcomeTag = "full_credit"
	OutcomePhysicalRefund  CancellationOutcomeTag = "physical_refund"
	OutcomeNoPolicy        CancellationOutcomeTag = "no_policy"
	OutcomeNoDetails       CancellationOutcomeTag = "no_details"
	OutcomeUnknownStrategy CancellationOutcomeTag = "unknown_strategy"
)
