package get_available_slots

import "fmt"

// validateRequest checks the structural shape of a slot listing request
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
