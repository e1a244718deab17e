package domain

import "time"

// ActivityType represents the activity a booking was made for
type ActivityType string

const (
	ActivityDiscovery   ActivityType = "discovery"
	ActivityDiscover    ActivityType = "discover" // common shorthand, stored as-is
	ActivityTryDive     ActivityType = "try_dive"
	ActivityOrientation ActivityType = "orientation"
	ActivityTryScuba    ActivityType = "try_scuba"
	ActivityDiving      ActivityType = "diving"
)

// Lane is the scheduling lane a booking is eligible for
type Lane string

const (
	LaneShore Lane = "shore"
	LaneBoat  Lane = "boat"
	// LaneNone неизвестный тип активности: бронирование остаётся видимым,
	// но не подлежит автоматическому назначению ни в одну линию
	LaneNone Lane = ""
)

// ClassifyActivity maps an activity type to its scheduling lane.
// Unknown types map to LaneNone and must never be coerced into a lane.
func ClassifyActivity(activity ActivityType) Lane {
	for _, a := range ShoreActivityTypes {
		if activity == a {
			return LaneShore
		}
	}
	for _, a := range BoatActivityTypes {
		if activity == a {
			return LaneBoat
		}
	}
	return LaneNone
}

// Booking represents a dive booking owned by the dive-center core service.
// The scheduling engine only ever mutates SlotAssignment and, for boat
// assignments, BoatID; everything else is read-only here.
type Booking struct {
	ID            string
	CustomerID    string
	LocationID    string
	BoatID        *string
	ActivityType  ActivityType
	NumberOfDives int
	BookingDate   time.Time

	SlotAssignment *SlotAssignment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lane returns the scheduling lane this booking is eligible for
func (b *Booking) Lane() Lane {
	return ClassifyActivity(b.ActivityType)
}

// DiveWeight возвращает вес бронирования при расчёте вместимости лодок
// (количество погружений, минимум 1)
func (b *Booking) DiveWeight() int {
	if b.NumberOfDives < 1 {
		return 1
	}
	return b.NumberOfDives
}

// IsAssigned returns true if the booking currently holds a slot assignment
func (b *Booking) IsAssigned() bool {
	return b.SlotAssignment != nil
}

// HasBoat returns true if the booking carries a concrete boat reference
func (b *Booking) HasBoat() bool {
	return b.BoatID != nil && *b.BoatID != ""
}
