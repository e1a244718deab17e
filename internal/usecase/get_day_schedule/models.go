package get_day_schedule

import (
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// Request запрос расписания дня локации
type Request struct {
	LocationID string
	Date       time.Time
}

// Response расписание дня: береговые окна, лодочные сессии и списки
// бронирований вне сетки слотов
type Response struct {
	LocationID string
	Date       time.Time

	ShoreWindows []ShoreWindow
	Boats        []BoatSchedule

	// Unassigned бронирования с известной линией, но без назначения на слот
	Unassigned []BookingSummary
	// Ineligible бронирования с неизвестным типом активности: остаются видимыми,
	// но не подлежат автоматическому назначению
	Ineligible []BookingSummary
	// Unmatched назначенные бронирования, ключ слота которых не совпал ни с одним
	// сгенерированным окном (устаревший или неразбираемый идентификатор)
	Unmatched []UnmatchedAssignment

	DiveSites []DiveSiteOption
}

// ShoreWindow береговое окно с попавшими в него бронированиями
type ShoreWindow struct {
	Slot       domain.Slot
	BookingIDs []string
	GuideIDs   []string
	// Occupied суммарный вес бронирований окна (число погружений, минимум 1)
	Occupied int
}

// BoatSchedule активная лодка дня со всеми её сессиями
type BoatSchedule struct {
	Boat     domain.Boat
	Sessions []SessionWindow
}

// SessionWindow лодочная сессия с попавшими в неё бронированиями
type SessionWindow struct {
	Slot       domain.Slot
	BookingIDs []string
	GuideIDs   []string
	Occupied   int
	// OverCapacity выставляется, когда вес бронирований превышает вместимость
	// лодки. Предупреждение для оператора, назначение при этом не блокируется
	OverCapacity bool
}

// BookingSummary краткое представление бронирования в списках вне сетки
type BookingSummary struct {
	BookingID    string
	CustomerID   string
	ActivityType domain.ActivityType
	Lane         domain.Lane
	DiveWeight   int
}

// UnmatchedAssignment назначенное бронирование с неразрешимым ключом слота
type UnmatchedAssignment struct {
	Booking BookingSummary
	SlotKey string
}

// DiveSiteOption дайв-сайт локации для выбора оператором
type DiveSiteOption struct {
	ID         string
	Name       string
	Difficulty string
}

func summarize(booking *domain.Booking) BookingSummary {
	return BookingSummary{
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		ActivityType: booking.ActivityType,
		Lane:         booking.Lane(),
		DiveWeight:   booking.DiveWeight(),
	}
}
