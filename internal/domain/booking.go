package domain

import (
	"time"

	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment booked for a specific staff member
type Booking struct {
	ID          int64
	CustomerID  int64
	SalonID     int64
	ServiceID   int64
	StaffID     int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	StaffName    string
	Notes        *string

	// Customer contacts captured at creation time, used by notification channels
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking date/time can be changed
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StartsAt returns the booking start as a point in time.
// BookingDate carries the day, StartTime carries salon-local wall clock time.
func (b *Booking) StartsAt() time.Time {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		minutes/60, minutes%60, 0, 0, b.BookingDate.Location(),
	)
}

// Interval returns the [start, end) slot occupied by the booking
func (b *Booking) Interval() TimeSlot {
	return TimeSlot{StartTime: b.StartTime, EndTime: b.EndTime}
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные/завершенные бронирования
}
