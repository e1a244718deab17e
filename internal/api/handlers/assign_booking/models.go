package assign_booking

// AssignBookingRequest HTTP request model назначения бронирования на слот
type AssignBookingRequest struct {
	BookingID string `json:"bookingId"`
	// Date день расписания, обязателен для лодочных слотов
	Date string `json:"date,omitempty"`
}
