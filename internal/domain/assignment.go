package domain

import (
	"github.com/m04kA/DCMS-ScheduleService/pkg/types"
)

// SlotAssignment is the value object persisted on a booking. Exactly one of
// the two shapes is populated; an absent assignment means unassigned.
type SlotAssignment struct {
	Kind SlotKind `json:"kind"`

	// Shore shape
	SlotID string `json:"slotId,omitempty"`
	// SlotTime is derived from SlotID; omitted when the raw ID does not parse
	// (degraded but recoverable, the assignment itself is still recorded)
	SlotTime *types.TimeString `json:"slotTime,omitempty"`

	// Boat shape
	BoatID  string  `json:"boatId,omitempty"`
	Session Session `json:"session,omitempty"`

	GuideIDs []string `json:"guideIds,omitempty"`
}

// NewShoreAssignment создает береговое назначение из типизированного идентификатора
func NewShoreAssignment(id SlotID) *SlotAssignment {
	start := id.StartTime
	return &SlotAssignment{
		Kind:     SlotKindShore,
		SlotID:   id.Encode(),
		SlotTime: &start,
	}
}

// NewShoreAssignmentFromRaw создает береговое назначение из сырой строки
// Если строка не разбирается, назначение всё равно записывается с исходным
// идентификатором, но без производного SlotTime
func NewShoreAssignmentFromRaw(raw string) *SlotAssignment {
	id, err := ParseSlotID(raw)
	if err != nil || id.Kind != SlotKindShore {
		return &SlotAssignment{Kind: SlotKindShore, SlotID: raw}
	}
	return NewShoreAssignment(id)
}

// NewBoatAssignment создает лодочное назначение
func NewBoatAssignment(boatID string, session Session) *SlotAssignment {
	return &SlotAssignment{
		Kind:    SlotKindBoat,
		BoatID:  boatID,
		Session: session,
	}
}

// SlotKey returns the encoded slot identity this assignment points at.
// Для берегового назначения с неразбираемым SlotID ключом остаётся сырая
// строка: бронирование не теряется, слот просто не получает времени
func (a *SlotAssignment) SlotKey() string {
	switch a.Kind {
	case SlotKindShore:
		return a.SlotID
	case SlotKindBoat:
		return NewBoatSlotID(a.BoatID, a.Session).Encode()
	default:
		return ""
	}
}
