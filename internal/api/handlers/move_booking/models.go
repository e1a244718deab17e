package move_booking

// MoveBookingRequest HTTP request model переноса бронирования между слотами
type MoveBookingRequest struct {
	FromSlotID string `json:"fromSlotId"`
	ToSlotID   string `json:"toSlotId"`
	// Date день расписания, обязателен для лодочных слотов
	Date string `json:"date,omitempty"`
}
