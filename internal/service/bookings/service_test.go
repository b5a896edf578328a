package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/internal/notify/email"
	"github.com/glowpoint/salon-booking-service/internal/service/bookings/models"
	"github.com/glowpoint/salon-booking-service/internal/service/notifications"
	notifyModels "github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// --- Фейки зависимостей ---

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking      *domain.Booking
	staffDay     []*domain.Booking
	cancelled    []int64
	scheduleCall *scheduleCall
}

type scheduleCall struct {
	id        int64
	date      time.Time
	startTime types.TimeString
	endTime   types.TimeString
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	return r.staffDay, nil
}

func (r *fakeBookingRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id int64) error {
	r.cancelled = append(r.cancelled, id)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return nil
}

func (r *fakeBookingRepo) UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime, endTime types.TimeString) error {
	r.scheduleCall = &scheduleCall{id: id, date: date, startTime: startTime, endTime: endTime}
	return nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
}

func (r *fakeSalonRepo) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return r.salon, nil
}

type fakeNotifier struct {
	cancellations []notifyModels.BookingNotification
	reschedules   []notifyModels.BookingNotification
}

func (n *fakeNotifier) SendBookingCancellation(ctx context.Context, data notifyModels.BookingNotification) []notifyModels.ChannelResult {
	n.cancellations = append(n.cancellations, data)
	return nil
}

func (n *fakeNotifier) SendBookingReschedule(ctx context.Context, data notifyModels.BookingNotification) []notifyModels.ChannelResult {
	n.reschedules = append(n.reschedules, data)
	return nil
}

type fakeNotificationMetrics struct {
	mu      sync.Mutex
	records [][3]string
}

func (m *fakeNotificationMetrics) RecordNotification(notificationType, channel, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, [3]string{notificationType, channel, status})
}

func (m *fakeNotificationMetrics) snapshot() [][3]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][3]string(nil), m.records...)
}

// --- Хелперы ---

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		CustomerID:  42,
		SalonID:     1,
		ServiceID:   3,
		StaffID:     5,
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:        domain.StatusConfirmed,
		ServiceName:   "Стрижка",
		StaffName:     "Анна",
		CustomerName:  "Мария",
		CustomerEmail: "maria@example.com",
		CustomerPhone: "+79990001122",
	}
}

func newTestService(repo *fakeBookingRepo, notifier Notifier, now time.Time) *Service {
	return NewService(
		repo,
		&fakeSalonRepo{salon: &domain.Salon{ID: 1, Name: "GlowPoint"}},
		notifier,
		fakeTxManager{},
		fakeClock{now: now},
		noopLogger{},
	)
}

// --- Cancel ---

func TestCancel_MoreThan24HoursBefore(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	notifier := &fakeNotifier{}
	// До начала бронирования 25 часов
	svc := newTestService(repo, notifier, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{CustomerID: 42})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, repo.cancelled)
	require.Len(t, notifier.cancellations, 1)
	assert.Equal(t, int64(7), notifier.cancellations[0].BookingID)
	assert.Equal(t, "GlowPoint", notifier.cancellations[0].SalonName)
	// Контакты клиента берутся с самой брони
	assert.Equal(t, "maria@example.com", notifier.cancellations[0].CustomerEmail)
	assert.Equal(t, "+79990001122", notifier.cancellations[0].CustomerPhone)
}

func TestCancel_ExactlyAtNoticeBoundary(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	// Ровно 24 часа до начала бронирования: отмена еще разрешена
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{CustomerID: 42})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.cancelled)
}

func TestCancel_NotificationDeliverableByEmail(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	metrics := &fakeNotificationMetrics{}
	notifier := notifications.NewService(
		[]notifications.Channel{email.NewSender("no-reply@glowpoint.local", noopLogger{})},
		metrics,
		noopLogger{},
	)
	svc := newTestService(repo, notifier, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{CustomerID: 42})
	require.NoError(t, err)

	// Email-канал принял уведомление: адрес получателя пришел с брони
	assert.Contains(t, metrics.snapshot(), [3]string{"booking_cancellation", "email", "ok"})
}

func TestCancel_LessThan24HoursBefore(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	notifier := &fakeNotifier{}
	// До начала бронирования 23 часа
	svc := newTestService(repo, notifier, time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{CustomerID: 42})
	assert.ErrorIs(t, err, ErrTooLate)

	assert.Empty(t, repo.cancelled)
	assert.Empty(t, notifier.cancellations)
}

func TestCancel_ForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{CustomerID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: booking}
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{CustomerID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

// --- Reschedule ---

func TestReschedule_OverwritesDateAndTime(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	resp, err := svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "2026-03-15",
		StartTime:   "13:30",
		EndTime:     "14:30",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.scheduleCall)
	assert.Equal(t, int64(7), repo.scheduleCall.id)
	assert.Equal(t, types.TimeString("13:30"), repo.scheduleCall.startTime)
	assert.Equal(t, types.TimeString("14:30"), repo.scheduleCall.endTime)

	// ID и статус сохраняются, меняются только дата и время
	assert.Equal(t, "2026-03-15", resp.BookingDate)
	assert.Equal(t, "13:30", resp.StartTime)
	assert.Equal(t, "14:30", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)

	// Уведомление несет и старое, и новое расписание
	require.Len(t, notifier.reschedules, 1)
	assert.Equal(t, "2026-03-10", notifier.reschedules[0].OldBookingDate)
	assert.Equal(t, "10:00", notifier.reschedules[0].OldStartTime)
	assert.Equal(t, "2026-03-15", notifier.reschedules[0].BookingDate)
	assert.Equal(t, "13:30", notifier.reschedules[0].StartTime)
}

func TestReschedule_SlotConflict(t *testing.T) {
	repo := &fakeBookingRepo{
		booking: testBooking(),
		staffDay: []*domain.Booking{
			{ID: 8, StartTime: "13:00", EndTime: "14:00", Status: domain.StatusConfirmed},
		},
	}
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "2026-03-15",
		StartTime:   "13:30",
		EndTime:     "14:30",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, repo.scheduleCall)
}

func TestReschedule_IgnoresOwnSlot(t *testing.T) {
	// Единственное пересечение - само переносимое бронирование
	repo := &fakeBookingRepo{
		booking: testBooking(),
		staffDay: []*domain.Booking{
			{ID: 7, StartTime: "13:30", EndTime: "14:30", Status: domain.StatusConfirmed},
		},
	}
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "2026-03-10",
		StartTime:   "13:30",
		EndTime:     "14:30",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.scheduleCall)
}

func TestReschedule_LessThan24HoursBefore(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	// До текущего начала бронирования 23 часа
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC))

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "2026-04-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	assert.ErrorIs(t, err, ErrTooLate)
	assert.Nil(t, repo.scheduleCall)
}

func TestReschedule_EndBeforeStart(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "2026-03-15",
		StartTime:   "14:30",
		EndTime:     "13:30",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Nil(t, repo.scheduleCall)
}

func TestReschedule_InvalidInput(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "15.03.2026",
		StartTime:   "13:30",
		EndTime:     "14:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Reschedule(context.Background(), 7, &models.RescheduleBookingRequest{
		CustomerID:  42,
		BookingDate: "2026-03-15",
		StartTime:   "half past one",
		EndTime:     "14:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- GetByID ---

func TestGetByID_OwnershipCheck(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	resp, err := svc.GetByID(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)

	_, err = svc.GetByID(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
