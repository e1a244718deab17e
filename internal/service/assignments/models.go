package assignments

import (
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// AssignRequest запрос назначения бронирования на слот
type AssignRequest struct {
	LocationID string
	OperatorID string
	BookingID  string
	SlotID     domain.SlotID
	// Date день расписания, для береговых слотов берётся из идентификатора
	Date time.Time
}

// UnassignRequest запрос снятия бронирований со слота
type UnassignRequest struct {
	LocationID string
	OperatorID string
	SlotID     domain.SlotID
	// BookingID nil означает снять все бронирования слота
	BookingID *string
	Date      time.Time
}

// MoveRequest запрос переноса бронирования между слотами
// Перенос выполняется как снятие и повторное назначение двумя записями:
// если вторая половина не удалась, бронирование остаётся неназначенным
type MoveRequest struct {
	LocationID string
	OperatorID string
	BookingID  string
	FromSlotID domain.SlotID
	ToSlotID   domain.SlotID
	Date       time.Time
}

// AssignGuidesRequest запрос назначения гидов на слот
// Пустой список снимает гидов со слота
type AssignGuidesRequest struct {
	LocationID string
	OperatorID string
	SlotID     domain.SlotID
	GuideIDs   []string
	Date       time.Time
}
