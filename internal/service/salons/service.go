package salons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	serviceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
	"github.com/glowpoint/salon-booking-service/internal/service/salons/models"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// Service сервис для работы с салонами, их услугами и мастерами
type Service struct {
	salonRepo   SalonRepository
	serviceRepo ServiceRepository
	staffRepo   StaffRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:   salonRepo,
		serviceRepo: serviceRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// Салоны

// Create создает новый салон
func (s *Service) Create(ctx context.Context, req *models.CreateSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Create: creating salon %q in city=%s for owner=%d", req.Name, req.City, req.OwnerID)

	if err := validateCreateSalon(req); err != nil {
		s.logger.Warn("Create: invalid salon payload: %v", err)
		return nil, err
	}

	opening, err := types.NewTimeStringFromString(req.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid opening time", ErrInvalidInput)
	}
	closing, err := types.NewTimeStringFromString(req.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid closing time", ErrInvalidInput)
	}
	if !opening.IsBefore(closing) {
		return nil, fmt.Errorf("%w: opening time must be before closing time", ErrInvalidInput)
	}

	salon := &domain.Salon{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		City:        strings.TrimSpace(req.City),
		Address:     strings.TrimSpace(req.Address),
		Phone:       req.Phone,
		OpeningTime: opening,
		ClosingTime: closing,
	}

	created, err := s.salonRepo.Create(ctx, salon)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created salon id=%d", created.ID)
	return models.FromDomainSalon(created), nil
}

// GetByID получает салон по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SalonResponse, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetByID: salon id=%d not found", id)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetByID: repository error for salon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalon(salon), nil
}

// List ищет салоны по городу и минимальному рейтингу
func (s *Service) List(ctx context.Context, req *models.ListSalonsRequest) (*models.SalonListResponse, error) {
	filter := domain.SalonsFilter{
		City:      req.City,
		MinRating: req.MinRating,
	}

	salons, err := s.salonRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d salons", len(salons))
	return models.FromDomainSalonList(salons), nil
}

// Update частично обновляет салон
// Доступно только владельцу салона
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Update: updating salon id=%d by user=%d", id, req.UserID)

	salon, err := s.checkOwnerAccess(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	upd, err := req.ToRepoUpdate()
	if err != nil {
		s.logger.Warn("Update: invalid time format for salon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: invalid time format", ErrInvalidInput)
	}

	// Часы работы должны оставаться согласованными после частичного обновления
	opening := salon.OpeningTime
	closing := salon.ClosingTime
	if upd.OpeningTime != nil {
		opening = *upd.OpeningTime
	}
	if upd.ClosingTime != nil {
		closing = *upd.ClosingTime
	}
	if !opening.IsBefore(closing) {
		return nil, fmt.Errorf("%w: opening time must be before closing time", ErrInvalidInput)
	}

	if err := s.salonRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Update: repository error for salon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload salon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload salon: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated salon id=%d", id)
	return models.FromDomainSalon(updated), nil
}

// Delete удаляет салон
// Доступно только владельцу салона
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting salon id=%d by user=%d", id, userID)

	if _, err := s.checkOwnerAccess(ctx, id, userID); err != nil {
		return err
	}

	if err := s.salonRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		s.logger.Error("Delete: repository error for salon id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted salon id=%d", id)
	return nil
}

// Услуги

// CreateService добавляет услугу в каталог салона
// Доступно только владельцу салона
func (s *Service) CreateService(ctx context.Context, salonID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q for salon=%d by user=%d", req.Name, salonID, req.UserID)

	if _, err := s.checkOwnerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	if err := validateService(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("CreateService: invalid service payload for salon=%d: %v", salonID, err)
		return nil, err
	}

	service := &domain.SalonService{
		SalonID:         salonID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d for salon=%d", created.ID, salonID)
	return models.FromDomainService(created), nil
}

// ListServices возвращает каталог услуг салона
func (s *Service) ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error) {
	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("ListServices: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// UpdateService частично обновляет услугу салона
func (s *Service) UpdateService(ctx context.Context, salonID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%d for salon=%d by user=%d", serviceID, salonID, req.UserID)

	if _, err := s.checkOwnerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.getSalonService(ctx, salonID, serviceID); err != nil {
		return nil, err
	}

	if err := validateServiceUpdate(req); err != nil {
		s.logger.Warn("UpdateService: invalid payload for service id=%d: %v", serviceID, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, serviceID, req.ToRepoUpdate()); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	updated, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("UpdateService: failed to reload service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - failed to reload service: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", serviceID)
	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу из каталога салона
func (s *Service) DeleteService(ctx context.Context, salonID, serviceID, userID int64) error {
	s.logger.Info("DeleteService: deleting service id=%d for salon=%d by user=%d", serviceID, salonID, userID)

	if _, err := s.checkOwnerAccess(ctx, salonID, userID); err != nil {
		return err
	}

	if _, err := s.getSalonService(ctx, salonID, serviceID); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: successfully deleted service id=%d", serviceID)
	return nil
}

// Мастера

// CreateStaff добавляет мастера в салон
// Доступно только владельцу салона
func (s *Service) CreateStaff(ctx context.Context, salonID int64, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("CreateStaff: creating staff %q for salon=%d by user=%d", req.Name, salonID, req.UserID)

	if _, err := s.checkOwnerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}

	member := &domain.Staff{
		SalonID:   salonID,
		Name:      strings.TrimSpace(req.Name),
		Specialty: req.Specialty,
	}

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		s.logger.Error("CreateStaff: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: successfully created staff id=%d for salon=%d", created.ID, salonID)
	return models.FromDomainStaff(created), nil
}

// ListStaff возвращает мастеров салона
func (s *Service) ListStaff(ctx context.Context, salonID int64) (*models.StaffListResponse, error) {
	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	staff, err := s.staffRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("ListStaff: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(staff), nil
}

// UpdateStaff частично обновляет данные мастера
func (s *Service) UpdateStaff(ctx context.Context, salonID, staffID int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("UpdateStaff: updating staff id=%d for salon=%d by user=%d", staffID, salonID, req.UserID)

	if _, err := s.checkOwnerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.getSalonStaff(ctx, salonID, staffID); err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: staff name cannot be empty", ErrInvalidInput)
	}

	if err := s.staffRepo.Update(ctx, staffID, req.ToRepoUpdate()); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("UpdateStaff: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %v", ErrInternal, err)
	}

	updated, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		s.logger.Error("UpdateStaff: failed to reload staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: UpdateStaff - failed to reload staff: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStaff: successfully updated staff id=%d", staffID)
	return models.FromDomainStaff(updated), nil
}

// DeleteStaff удаляет мастера из салона
func (s *Service) DeleteStaff(ctx context.Context, salonID, staffID, userID int64) error {
	s.logger.Info("DeleteStaff: deleting staff id=%d for salon=%d by user=%d", staffID, salonID, userID)

	if _, err := s.checkOwnerAccess(ctx, salonID, userID); err != nil {
		return err
	}

	if _, err := s.getSalonStaff(ctx, salonID, staffID); err != nil {
		return err
	}

	if err := s.staffRepo.Delete(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("DeleteStaff: repository error for staff id=%d: %v", staffID, err)
		return fmt.Errorf("%w: DeleteStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteStaff: successfully deleted staff id=%d", staffID)
	return nil
}

// Вспомогательные методы

// checkOwnerAccess проверяет, что пользователь является владельцем салона
func (s *Service) checkOwnerAccess(ctx context.Context, salonID, userID int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("checkOwnerAccess: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("checkOwnerAccess: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: checkOwnerAccess - repository error: %v", ErrInternal, err)
	}

	if salon.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of salon=%d", userID, salonID)
		return nil, ErrAccessDenied
	}

	return salon, nil
}

// getSalonService получает услугу и проверяет её принадлежность салону
func (s *Service) getSalonService(ctx context.Context, salonID, serviceID int64) (*domain.SalonService, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("getSalonService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: getSalonService - repository error: %v", ErrInternal, err)
	}

	if service.SalonID != salonID {
		s.logger.Warn("getSalonService: service id=%d does not belong to salon=%d", serviceID, salonID)
		return nil, ErrServiceNotFound
	}

	return service, nil
}

// getSalonStaff получает мастера и проверяет его принадлежность салону
func (s *Service) getSalonStaff(ctx context.Context, salonID, staffID int64) (*domain.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("getSalonStaff: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: getSalonStaff - repository error: %v", ErrInternal, err)
	}

	if member.SalonID != salonID {
		s.logger.Warn("getSalonStaff: staff id=%d does not belong to salon=%d", staffID, salonID)
		return nil, ErrStaffNotFound
	}

	return member, nil
}

// Валидация

func validateCreateSalon(req *models.CreateSalonRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: salon name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.City) == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	return nil
}

func validateService(name string, durationMinutes int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if err := validateDuration(durationMinutes); err != nil {
		return err
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return nil
}

func validateServiceUpdate(req *models.UpdateServiceRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: service name cannot be empty", ErrInvalidInput)
	}
	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return err
		}
	}
	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return nil
}

func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinSlotDurationMinutes || durationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	return nil
}
