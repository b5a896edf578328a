package salons

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	serviceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	List(ctx context.Context, filter domain.SalonsFilter) ([]*domain.Salon, error)
	Update(ctx context.Context, id int64, upd salonRepo.SalonUpdate) error
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг салона
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.SalonService) (*domain.SalonService, error)
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.SalonService, error)
	Update(ctx context.Context, id int64, upd serviceRepo.ServiceUpdate) error
	Delete(ctx context.Context, id int64) error
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	Create(ctx context.Context, member *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.Staff, error)
	Update(ctx context.Context, id int64, upd staffRepo.StaffUpdate) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
