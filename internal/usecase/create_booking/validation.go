package create_booking

import (
	"fmt"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	// Слот должен иметь положительную длительность
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeSlot)
	}

	if req.Status != nil {
		if _, err := parseInitialStatus(*req.Status); err != nil {
			return err
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата и время бронирования не в прошлом
func validateDate(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Для сегодняшней даты время начала должно быть еще впереди
	if isSameDay(bookingDate, now) && startTime.IsBefore(types.NewTimeString(now)) {
		return ErrInvalidDate
	}

	return nil
}

// validateWorkingHours проверяет, что слот целиком попадает в часы работы салона
func validateWorkingHours(salon *domain.Salon, start, end types.TimeString) error {
	if start.IsBefore(salon.OpeningTime) || end.IsAfter(salon.ClosingTime) {
		return ErrOutsideWorkingHours
	}
	return nil
}

// hasOverlap проверяет, пересекается ли слот хотя бы с одним активным бронированием
// Интервалы полуоткрытые, граничащие бронирования пересечением не считаются
func hasOverlap(slot domain.TimeSlot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if slot.Overlaps(booking.Interval()) {
			return true
		}
	}
	return false
}

// parseInitialStatus валидирует начальный статус, переданный клиентом
func parseInitialStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed:
		return domain.BookingStatus(status), nil
	default:
		return "", fmt.Errorf("%w: invalid initial status %q", ErrInvalidInput, status)
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
