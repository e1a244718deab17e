package assignments

import (
	"fmt"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

func validateAssign(req AssignRequest) error {
	if req.LocationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if req.OperatorID == "" {
		return fmt.Errorf("%w: operatorId is required", ErrInvalidInput)
	}
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	return validateSlot(req.SlotID, req.Date)
}

func validateUnassign(req UnassignRequest) error {
	if req.LocationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if req.OperatorID == "" {
		return fmt.Errorf("%w: operatorId is required", ErrInvalidInput)
	}
	if req.BookingID != nil && *req.BookingID == "" {
		return fmt.Errorf("%w: bookingId must not be empty", ErrInvalidInput)
	}
	return validateSlot(req.SlotID, req.Date)
}

func validateMove(req MoveRequest) error {
	if req.LocationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if req.OperatorID == "" {
		return fmt.Errorf("%w: operatorId is required", ErrInvalidInput)
	}
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if err := validateSlot(req.FromSlotID, req.Date); err != nil {
		return err
	}
	if err := validateSlot(req.ToSlotID, req.Date); err != nil {
		return err
	}
	if req.FromSlotID.Encode() == req.ToSlotID.Encode() {
		return fmt.Errorf("%w: source and target slots are the same", ErrInvalidInput)
	}
	return nil
}

func validateAssignGuides(req AssignGuidesRequest) error {
	if req.LocationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if req.OperatorID == "" {
		return fmt.Errorf("%w: operatorId is required", ErrInvalidInput)
	}
	for _, id := range req.GuideIDs {
		if id == "" {
			return fmt.Errorf("%w: guide ids must not be empty", ErrInvalidInput)
		}
	}
	return validateSlot(req.SlotID, req.Date)
}

// validateSlot проверяет вид слота и наличие дня расписания
// Береговые слоты несут дату в себе, лодочным нужна дата запроса
func validateSlot(slotID domain.SlotID, date time.Time) error {
	switch slotID.Kind {
	case domain.SlotKindShore:
		if slotID.Date.IsZero() {
			return fmt.Errorf("%w: shore slot has no date", ErrInvalidInput)
		}
	case domain.SlotKindBoat:
		if slotID.BoatID == "" {
			return fmt.Errorf("%w: boat slot has no boat id", ErrInvalidInput)
		}
		if date.IsZero() {
			return fmt.Errorf("%w: date is required for boat slots", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown slot kind %q", ErrInvalidInput, slotID.Kind)
	}
	return nil
}
