package divecenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// Booking модель бронирования из основного сервиса дайв-центра
type Booking struct {
	ID             string                 `json:"id"`
	CustomerID     string                 `json:"customerId"`
	LocationID     string                 `json:"locationId"`
	BoatID         *string                `json:"boatId"`
	ActivityType   string                 `json:"activityType"`
	NumberOfDives  int                    `json:"numberOfDives"`
	BookingDate    string                 `json:"bookingDate"`
	SlotAssignment *domain.SlotAssignment `json:"slotAssignment"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// Boat модель лодки из основного сервиса
type Boat struct {
	ID         string `json:"id"`
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	IsActive   bool   `json:"isActive"`
}

// Staff модель сотрудника из основного сервиса
type Staff struct {
	ID         string `json:"id"`
	LocationID string `json:"locationId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
	IsActive   bool   `json:"isActive"`
}

// DiveSite модель дайв-сайта из основного сервиса
type DiveSite struct {
	ID         string `json:"id"`
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
}

// ErrorResponse модель ошибки основного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BookingSlotPatch частичное обновление бронирования: только поля назначения
// SlotAssignment nil означает снятие назначения (slotAssignment = null)
type BookingSlotPatch struct {
	SlotAssignment *domain.SlotAssignment
	// BoatID устанавливает ссылку на лодку; ClearBoat явно обнуляет её
	BoatID    *string
	ClearBoat bool
}

func (p BookingSlotPatch) toWire() map[string]interface{} {
	body := map[string]interface{}{
		"slotAssignment": p.SlotAssignment,
	}
	if p.BoatID != nil {
		body["boatId"] = *p.BoatID
	} else if p.ClearBoat {
		body["boatId"] = nil
	}
	return body
}

// ToDomain конвертирует бронирование в доменную модель
// Дата бронирования может приходить как ISO-датавремя или как чистая дата
func (b *Booking) ToDomain() (*domain.Booking, error) {
	dateStr := b.BookingDate
	if idx := strings.IndexByte(dateStr, 'T'); idx > 0 {
		dateStr = dateStr[:idx]
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s has invalid date %q", ErrInvalidResponse, b.ID, b.BookingDate)
	}

	return &domain.Booking{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		LocationID:     b.LocationID,
		BoatID:         b.BoatID,
		ActivityType:   domain.ActivityType(b.ActivityType),
		NumberOfDives:  b.NumberOfDives,
		BookingDate:    date,
		SlotAssignment: b.SlotAssignment,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}, nil
}

// ToDomain конвертирует лодку в доменную модель
func (b *Boat) ToDomain() domain.Boat {
	return domain.Boat{
		ID:         b.ID,
		LocationID: b.LocationID,
		Name:       b.Name,
		Capacity:   b.Capacity,
		IsActive:   b.IsActive,
	}
}

// ToDomain конвертирует сотрудника в доменную модель
func (s *Staff) ToDomain() domain.Staff {
	return domain.Staff{
		ID:         s.ID,
		LocationID: s.LocationID,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Role:       domain.StaffRole(s.Role),
		IsActive:   s.IsActive,
	}
}

// ToDomain конвертирует дайв-сайт в доменную модель
func (d *DiveSite) ToDomain() domain.DiveSite {
	return domain.DiveSite{
		ID:         d.ID,
		LocationID: d.LocationID,
		Name:       d.Name,
		Difficulty: d.Difficulty,
	}
}
