package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if req.PaymentMethodID <= 0 {
		return fmt.Errorf("%w: paymentMethodId must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	for i, slot := range req.Slots {
		if err := slot.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: slot %d: invalid start time: %v", ErrInvalidInput, i, err)
		}
		if err := slot.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: slot %d: invalid end time: %v", ErrInvalidInput, i, err)
		}
		if !slot.StartTime.IsBefore(slot.EndTime) {
			return fmt.Errorf("%w: slot %d: start time must be before end time", ErrInvalidInput, i)
		}
		if slot.Price < 0 {
			return fmt.Errorf("%w: slot %d: price must not be negative", ErrInvalidInput, i)
		}
	}

	return nil
}

// normalizeCreditID приводит сентинельные значения creditId к nil
func normalizeCreditID(creditID *int64) *int64 {
	if creditID == nil {
		return nil
	}
	for _, sentinel := range domain.NoCreditSentinels {
		if *creditID == sentinel {
			return nil
		}
	}
	if *creditID < 0 {
		return nil
	}
	return creditID
}
