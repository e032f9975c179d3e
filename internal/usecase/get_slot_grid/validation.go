package get_slot_grid

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch req.Mode {
	case ModeSchedule, ModeFullDay:
	default:
		return fmt.Errorf("%w: unknown grid mode %q", ErrInvalidInput, req.Mode)
	}

	return nil
}
