package create_booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowpoint/salon-booking-service/internal/domain"
)

func validRequest() *Request {
	return &Request{
		CustomerID: 42,
		SalonID:    1,
		ServiceID:  3,
		StaffID:    5,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))

	req := validRequest()
	req.CustomerID = 0
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.SalonID = -1
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.Date = time.Time{}
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.StartTime = ""
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.StartTime = "10am"
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.EndTime = ""
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.EndTime = "09:00"
	assert.ErrorIs(t, validateRequest(req), ErrInvalidTimeSlot)

	req = validRequest()
	badStatus := "done"
	req.Status = &badStatus
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	longNotes := strings.Repeat("x", domain.MaxNotesLength+1)
	req.Notes = &longNotes
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	// Будущая дата
	assert.NoError(t, validateDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", now))

	// Вчерашняя дата
	assert.ErrorIs(t, validateDate(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), "10:00", now), ErrInvalidDate)

	// Сегодня, но время уже прошло
	today := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, validateDate(today, "11:00", now), ErrInvalidDate)

	// Сегодня, время впереди
	assert.NoError(t, validateDate(today, "15:00", now))
}

func TestValidateWorkingHours(t *testing.T) {
	salon := &domain.Salon{OpeningTime: "09:00", ClosingTime: "18:00"}

	assert.NoError(t, validateWorkingHours(salon, "09:00", "09:30"))
	assert.NoError(t, validateWorkingHours(salon, "17:30", "18:00"))

	assert.ErrorIs(t, validateWorkingHours(salon, "08:30", "09:00"), ErrOutsideWorkingHours)
	assert.ErrorIs(t, validateWorkingHours(salon, "17:45", "18:15"), ErrOutsideWorkingHours)
}

func TestHasOverlap(t *testing.T) {
	slot := domain.TimeSlot{StartTime: "11:30", EndTime: "12:00"}

	active := &domain.Booking{StartTime: "11:20", EndTime: "11:40", Status: domain.StatusPending}
	assert.True(t, hasOverlap(slot, []*domain.Booking{active}))

	// Граничащее бронирование слот не занимает
	touching := &domain.Booking{StartTime: "11:00", EndTime: "11:30", Status: domain.StatusConfirmed}
	assert.False(t, hasOverlap(slot, []*domain.Booking{touching}))

	// Отмененное бронирование слот не занимает
	cancelled := &domain.Booking{StartTime: "11:20", EndTime: "11:40", Status: domain.StatusCancelled}
	assert.False(t, hasOverlap(slot, []*domain.Booking{cancelled}))
}
