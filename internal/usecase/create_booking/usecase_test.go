package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	notifyModels "github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// --- Фейки зависимостей ---

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	staffDay []*domain.Booking
	created  *domain.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 100
	r.created = &created
	return &created, nil
}

func (r *fakeBookingRepo) GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	return r.staffDay, nil
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

type fakeNotifier struct {
	confirmations []notifyModels.BookingNotification
}

func (n *fakeNotifier) SendBookingConfirmation(ctx context.Context, data notifyModels.BookingNotification) []notifyModels.ChannelResult {
	n.confirmations = append(n.confirmations, data)
	return nil
}

// --- Хелперы ---

func newTestUseCase(repo *fakeBookingRepo, notifier *fakeNotifier) *UseCase {
	return &UseCase{
		bookingRepo: repo,
		salonRepo: &fakeSalonRepo{salon: &domain.Salon{
			ID:          1,
			Name:        "GlowPoint",
			OpeningTime: "09:00",
			ClosingTime: "18:00",
		}},
		serviceRepo: &fakeServiceRepo{service: &domain.SalonService{
			ID:              3,
			SalonID:         1,
			Name:            "Стрижка",
			DurationMinutes: 60,
			Price:           1500,
		}},
		staffRepo:    &fakeStaffRepo{member: &domain.Staff{ID: 5, SalonID: 1, Name: "Анна"}},
		notifier:     notifier,
		txManager:    fakeTxManager{},
		timeProvider: fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		logger:       noopLogger{},
	}
}

func testRequest() *Request {
	return &Request{
		CustomerID:    42,
		SalonID:       1,
		ServiceID:     3,
		StaffID:       5,
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		CustomerName:  "Мария",
		CustomerEmail: "maria@example.com",
	}
}

// --- Тесты ---

func TestExecute_CreatesBookingWithDenormalizedData(t *testing.T) {
	repo := &fakeBookingRepo{}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	// Денормализация данных услуги и мастера на момент создания
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, "Анна", resp.StaffName)

	// Контакты клиента сохраняются на самой брони для будущих уведомлений
	assert.Equal(t, "Мария", repo.created.CustomerName)
	assert.Equal(t, "maria@example.com", repo.created.CustomerEmail)

	// Подтверждение ушло с контактами клиента и названием салона
	require.Len(t, notifier.confirmations, 1)
	assert.Equal(t, int64(100), notifier.confirmations[0].BookingID)
	assert.Equal(t, "GlowPoint", notifier.confirmations[0].SalonName)
	assert.Equal(t, "maria@example.com", notifier.confirmations[0].CustomerEmail)
}

func TestExecute_SlotTakenByOverlap(t *testing.T) {
	repo := &fakeBookingRepo{
		staffDay: []*domain.Booking{
			{ID: 8, StartTime: "10:30", EndTime: "11:30", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_TouchingBookingDoesNotBlock(t *testing.T) {
	repo := &fakeBookingRepo{
		staffDay: []*domain.Booking{
			// Заканчивается ровно в момент начала нового слота
			{ID: 8, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, repo.created)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})

	req := testRequest()
	req.StartTime = "08:30"
	req.EndTime = "09:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Слот 17:30-18:30 выходит за закрытие
	req = testRequest()
	req.StartTime = "17:30"
	req.EndTime = "18:30"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})

	req := testRequest()
	req.Date = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceFromAnotherSalon(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})
	uc.serviceRepo = &fakeServiceRepo{service: &domain.SalonService{
		ID:              3,
		SalonID:         999,
		DurationMinutes: 60,
	}}

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_StaffFromAnotherSalon(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})
	uc.staffRepo = &fakeStaffRepo{member: &domain.Staff{ID: 5, SalonID: 999}}

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_EndBeforeStart(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})

	req := testRequest()
	req.StartTime = "11:00"
	req.EndTime = "10:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Нулевая длительность тоже не допускается
	req = testRequest()
	req.EndTime = req.StartTime
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_CallerSuppliedStatus(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeNotifier{})

	confirmed := "confirmed"
	req := testRequest()
	req.Status = &confirmed
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	// Отмененным или завершенным бронирование создать нельзя
	cancelled := "cancelled"
	req = testRequest()
	req.Status = &cancelled
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
