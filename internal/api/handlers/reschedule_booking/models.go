package reschedule_booking

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2026-03-15"
	StartTime   string `json:"startTime"`   // "14:00"
	EndTime     string `json:"endTime"`     // "15:00"
}
