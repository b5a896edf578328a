package salons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	serviceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
	"github.com/glowpoint/salon-booking-service/internal/service/salons/models"
	"github.com/glowpoint/salon-booking-service/pkg/ptr"
)

// --- Фейки зависимостей ---

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeSalonRepo struct {
	salon   *domain.Salon
	created *domain.Salon
	updated *salonRepo.SalonUpdate
	deleted []int64
}

func (r *fakeSalonRepo) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	created := *salon
	created.ID = 1
	r.created = &created
	return &created, nil
}

func (r *fakeSalonRepo) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	if r.salon == nil {
		return nil, salonRepo.ErrSalonNotFound
	}
	copied := *r.salon
	return &copied, nil
}

func (r *fakeSalonRepo) List(ctx context.Context, filter domain.SalonsFilter) ([]*domain.Salon, error) {
	return nil, nil
}

func (r *fakeSalonRepo) Update(ctx context.Context, id int64, upd salonRepo.SalonUpdate) error {
	r.updated = &upd
	return nil
}

func (r *fakeSalonRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeServiceRepo struct {
	service *domain.SalonService
	created *domain.SalonService
}

func (r *fakeServiceRepo) Create(ctx context.Context, service *domain.SalonService) (*domain.SalonService, error) {
	created := *service
	created.ID = 10
	r.created = &created
	return &created, nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.SalonService, error) {
	if r.service == nil {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return r.service, nil
}

func (r *fakeServiceRepo) ListBySalon(ctx context.Context, salonID int64) ([]*domain.SalonService, error) {
	return nil, nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, id int64, upd serviceRepo.ServiceUpdate) error {
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type fakeStaffRepo struct {
	member *domain.Staff
}

func (r *fakeStaffRepo) Create(ctx context.Context, member *domain.Staff) (*domain.Staff, error) {
	created := *member
	created.ID = 20
	return &created, nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	if r.member == nil {
		return nil, staffRepo.ErrStaffNotFound
	}
	return r.member, nil
}

func (r *fakeStaffRepo) ListBySalon(ctx context.Context, salonID int64) ([]*domain.Staff, error) {
	return nil, nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, id int64, upd staffRepo.StaffUpdate) error {
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

// --- Хелперы ---

func testSalon() *domain.Salon {
	return &domain.Salon{
		ID:          1,
		OwnerID:     42,
		Name:        "GlowPoint",
		City:        "Москва",
		Address:     "ул. Пушкина, 10",
		OpeningTime: "09:00",
		ClosingTime: "18:00",
	}
}

func newTestService(salons *fakeSalonRepo, services *fakeServiceRepo, staff *fakeStaffRepo) *Service {
	if salons == nil {
		salons = &fakeSalonRepo{salon: testSalon()}
	}
	if services == nil {
		services = &fakeServiceRepo{}
	}
	if staff == nil {
		staff = &fakeStaffRepo{}
	}
	return NewService(salons, services, staff, noopLogger{})
}

// --- Салоны ---

func TestCreateSalon(t *testing.T) {
	repo := &fakeSalonRepo{}
	svc := newTestService(repo, nil, nil)

	resp, err := svc.Create(context.Background(), &models.CreateSalonRequest{
		OwnerID:     42,
		Name:        "  GlowPoint  ",
		City:        "Москва",
		Address:     "ул. Пушкина, 10",
		OpeningTime: "09:00",
		ClosingTime: "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	// Название сохраняется без окружающих пробелов
	assert.Equal(t, "GlowPoint", repo.created.Name)
	assert.Equal(t, int64(42), repo.created.OwnerID)
}

func TestCreateSalon_Validation(t *testing.T) {
	svc := newTestService(&fakeSalonRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), &models.CreateSalonRequest{
		OwnerID: 42, City: "Москва", Address: "адрес",
		OpeningTime: "09:00", ClosingTime: "18:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Открытие должно быть раньше закрытия
	_, err = svc.Create(context.Background(), &models.CreateSalonRequest{
		OwnerID: 42, Name: "X", City: "Москва", Address: "адрес",
		OpeningTime: "18:00", ClosingTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateSalonRequest{
		OwnerID: 42, Name: "X", City: "Москва", Address: "адрес",
		OpeningTime: "nine", ClosingTime: "18:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSalon_OwnerOnly(t *testing.T) {
	repo := &fakeSalonRepo{salon: testSalon()}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateSalonRequest{
		UserID: 99,
		Name:   ptr.Ptr("Другое имя"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updated)
}

func TestUpdateSalon_KeepsHoursConsistent(t *testing.T) {
	repo := &fakeSalonRepo{salon: testSalon()}
	svc := newTestService(repo, nil, nil)

	// Новое открытие 19:00 конфликтует с сохраненным закрытием 18:00
	_, err := svc.Update(context.Background(), 1, &models.UpdateSalonRequest{
		UserID:      42,
		OpeningTime: ptr.Ptr("19:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.updated)

	// Согласованная пара проходит
	_, err = svc.Update(context.Background(), 1, &models.UpdateSalonRequest{
		UserID:      42,
		OpeningTime: ptr.Ptr("10:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
}

func TestDeleteSalon(t *testing.T) {
	repo := &fakeSalonRepo{salon: testSalon()}
	svc := newTestService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1, 42))
	assert.Equal(t, []int64{1}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 99), ErrAccessDenied)
}

func TestSalonNotFound(t *testing.T) {
	svc := newTestService(&fakeSalonRepo{}, nil, nil)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

// --- Услуги ---

func TestCreateService_OwnerOnly(t *testing.T) {
	services := &fakeServiceRepo{}
	svc := newTestService(nil, services, nil)

	req := &models.CreateServiceRequest{
		UserID:          42,
		Name:            "Стрижка",
		DurationMinutes: 60,
		Price:           1500,
	}
	resp, err := svc.CreateService(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)

	req.UserID = 99
	_, err = svc.CreateService(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateService_DurationBounds(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		UserID: 42, Name: "Стрижка", DurationMinutes: 3, Price: 1500,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		UserID: 42, Name: "Стрижка", DurationMinutes: 481, Price: 1500,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		UserID: 42, Name: "Стрижка", DurationMinutes: 60, Price: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateService_WrongSalon(t *testing.T) {
	services := &fakeServiceRepo{service: &domain.SalonService{ID: 10, SalonID: 999}}
	svc := newTestService(nil, services, nil)

	_, err := svc.UpdateService(context.Background(), 1, 10, &models.UpdateServiceRequest{
		UserID: 42,
		Name:   ptr.Ptr("Новое имя"),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// --- Мастера ---

func TestCreateStaff(t *testing.T) {
	svc := newTestService(nil, nil, &fakeStaffRepo{})

	resp, err := svc.CreateStaff(context.Background(), 1, &models.CreateStaffRequest{
		UserID: 42,
		Name:   "Анна",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), resp.ID)

	_, err = svc.CreateStaff(context.Background(), 1, &models.CreateStaffRequest{
		UserID: 42,
		Name:   "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteStaff_WrongSalon(t *testing.T) {
	staff := &fakeStaffRepo{member: &domain.Staff{ID: 20, SalonID: 999}}
	svc := newTestService(nil, nil, staff)

	err := svc.DeleteStaff(context.Background(), 1, 20, 42)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
