package get_day_schedule

import "fmt"

func validateRequest(req Request) error {
	if req.LocationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
