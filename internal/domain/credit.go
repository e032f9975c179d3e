package domain

import "time"

// CreditStatus represents the lifecycle state of a user credit
type CreditStatus string

const (
	CreditIssued CreditStatus = "issued"
	CreditUsed   CreditStatus = "used"
)

// UserCredit represents a stored monetary balance granted to a user in
// lieu of a cash refund after cancellation. Consumed when applied to a
// new reservation.
type UserCredit struct {
	ID                  int64
	UserID              int64
	Amount              float64
	OriginReservationID int64
	Status              CreditStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsRedeemable returns true if the credit can still be applied to a reservation
func (c *UserCredit) IsRedeemable() bool {
	return c.Status == CreditIssued
}
