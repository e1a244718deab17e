package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/pkg/types"
)

// SlotKind discriminates the two slot shapes
type SlotKind string

const (
	SlotKindShore SlotKind = "shore"
	SlotKindBoat  SlotKind = "boat"
)

// Session is one of the fixed boat sessions of a day
type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
	SessionNight     Session = "night"
)

// ParseSession validates a raw session value
func ParseSession(raw string) (Session, error) {
	switch Session(raw) {
	case SessionMorning, SessionAfternoon, SessionNight:
		return Session(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSession, raw)
	}
}

// SlotID is the typed identity of a slot: exactly one of the two shapes.
// Строковая форма (Encode) используется только на границе персистентности,
// внутри сервиса слоты адресуются этой структурой
type SlotID struct {
	Kind SlotKind

	// Shore shape: date + window start time
	Date      time.Time
	StartTime types.TimeString

	// Boat shape: boat + session
	BoatID  string
	Session Session
}

// NewShoreSlotID создает идентификатор берегового окна
func NewShoreSlotID(date time.Time, start types.TimeString) SlotID {
	return SlotID{Kind: SlotKindShore, Date: date, StartTime: start}
}

// NewBoatSlotID создает идентификатор лодочной сессии
func NewBoatSlotID(boatID string, session Session) SlotID {
	return SlotID{Kind: SlotKindBoat, BoatID: boatID, Session: session}
}

// Encode serializes the slot identity to its wire form:
//   - shore: "shore-{yyyy}-{MM}-{dd}-{HH}-{mm}"
//   - boat:  "boat-{boatId}-{session}"
func (id SlotID) Encode() string {
	switch id.Kind {
	case SlotKindShore:
		return fmt.Sprintf("shore-%s-%s",
			id.Date.Format(DateFormat),
			strings.ReplaceAll(id.StartTime.String(), ":", "-"))
	case SlotKindBoat:
		return fmt.Sprintf("boat-%s-%s", id.BoatID, id.Session)
	default:
		return ""
	}
}

// ParseSlotID разбирает строковую форму идентификатора слота
// Для boat-формы сессия берётся с конца строки, поэтому идентификаторы лодок
// с дефисами разбираются корректно
func ParseSlotID(raw string) (SlotID, error) {
	switch {
	case strings.HasPrefix(raw, "shore-"):
		return parseShoreSlotID(raw)
	case strings.HasPrefix(raw, "boat-"):
		return parseBoatSlotID(raw)
	default:
		return SlotID{}, fmt.Errorf("%w: %q", ErrMalformedSlotID, raw)
	}
}

func parseShoreSlotID(raw string) (SlotID, error) {
	parts := strings.Split(strings.TrimPrefix(raw, "shore-"), "-")
	if len(parts) != 5 {
		return SlotID{}, fmt.Errorf("%w: %q", ErrMalformedSlotID, raw)
	}

	date, err := time.Parse(DateFormat, strings.Join(parts[:3], "-"))
	if err != nil {
		return SlotID{}, fmt.Errorf("%w: %q: %v", ErrMalformedSlotID, raw, err)
	}

	start, err := types.NewTimeStringFromString(parts[3] + ":" + parts[4])
	if err != nil {
		return SlotID{}, fmt.Errorf("%w: %q: %v", ErrMalformedSlotID, raw, err)
	}

	return NewShoreSlotID(date, start), nil
}

func parseBoatSlotID(raw string) (SlotID, error) {
	rest := strings.TrimPrefix(raw, "boat-")
	idx := strings.LastIndex(rest, "-")
	if idx <= 0 {
		return SlotID{}, fmt.Errorf("%w: %q", ErrMalformedSlotID, raw)
	}

	session, err := ParseSession(rest[idx+1:])
	if err != nil {
		return SlotID{}, fmt.Errorf("%w: %q: %v", ErrMalformedSlotID, raw, err)
	}

	return NewBoatSlotID(rest[:idx], session), nil
}

// Slot is a derived, addressable time window. Slots are recomputed from the
// fixed generation rules on every read and never stored on their own.
type Slot struct {
	ID          SlotID
	StartTime   types.TimeString
	DurationMin int

	// Capacity 0 для береговых окон: вместимость там не ограничивается,
	// для лодочных сессий равна вместимости лодки (мягкий лимит)
	Capacity int
}

// EndTime returns the window end time of day
func (s *Slot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMin)
}
