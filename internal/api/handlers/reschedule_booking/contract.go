package reschedule_booking

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
