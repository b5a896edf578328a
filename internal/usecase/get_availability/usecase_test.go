package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	return r.bookings, nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
}

func (r *fakeSalonRepo) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return r.salon, nil
}

type fakeServiceRepo struct {
	service *domain.SalonService
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.SalonService, error) {
	return r.service, nil
}

type fakeStaffRepo struct {
	member *domain.Staff
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	return r.member, nil
}

func newTestUseCase(bookings []*domain.Booking) *UseCase {
	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeSalonRepo{salon: &domain.Salon{ID: 1, OpeningTime: "09:00", ClosingTime: "12:00"}},
		&fakeServiceRepo{service: &domain.SalonService{ID: 3, SalonID: 1, DurationMinutes: 60}},
		&fakeStaffRepo{member: &domain.Staff{ID: 5, SalonID: 1}},
		noopLogger{},
	)
}

func testRequest() *Request {
	return &Request{
		SalonID: 1,
		StaffID: 5,
		Date:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_DefaultSlotDuration(t *testing.T) {
	uc := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Без услуги действует длительность по умолчанию
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DurationMinutes)
	// 09:00-12:00 с шагом 30 минут
	assert.Len(t, resp.Slots, 6)
}

func TestExecute_ServiceDuration(t *testing.T) {
	uc := newTestUseCase(nil)

	req := testRequest()
	req.ServiceID = ptr.Ptr(int64(3))
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_MarksBookedSlots(t *testing.T) {
	uc := newTestUseCase([]*domain.Booking{
		{StartTime: "09:30", EndTime: "10:00", Status: domain.StatusPending},
	})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	assert.False(t, resp.Slots[0].IsBooked)
	assert.True(t, resp.Slots[1].IsBooked)
	assert.False(t, resp.Slots[2].IsBooked)
}

func TestExecute_StaffFromAnotherSalon(t *testing.T) {
	uc := newTestUseCase(nil)
	uc.staffRepo = &fakeStaffRepo{member: &domain.Staff{ID: 5, SalonID: 999}}

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_ServiceFromAnotherSalon(t *testing.T) {
	uc := newTestUseCase(nil)
	uc.serviceRepo = &fakeServiceRepo{service: &domain.SalonService{ID: 3, SalonID: 999, DurationMinutes: 60}}

	req := testRequest()
	req.ServiceID = ptr.Ptr(int64(3))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(nil)

	req := testRequest()
	req.SalonID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest()
	req.Date = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
