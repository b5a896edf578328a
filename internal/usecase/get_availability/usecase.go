package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	serviceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
)

// UseCase use case для расчета доступных слотов мастера на день
type UseCase struct {
	bookingRepo BookingRepository
	salonRepo   SalonRepository
	serviceRepo ServiceRepository
	staffRepo   StaffRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		salonRepo:   salonRepo,
		serviceRepo: serviceRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// Execute выполняет расчет доступности мастера на указанную дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: salon=%d, staff=%d, service=%v, date=%s",
		req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон: его часы работы задают границы сетки
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailability: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailability: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Проверяем, что мастер существует и работает в этом салоне
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailability: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailability: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if member.SalonID != req.SalonID {
		uc.logger.Warn("GetAvailability: staff id=%d does not belong to salon=%d", req.StaffID, req.SalonID)
		return nil, ErrStaffNotFound
	}

	// 4. Длительность слота берется из услуги, без услуги действует дефолт
	durationMinutes := domain.DefaultSlotDurationMinutes
	if req.ServiceID != nil {
		service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailability: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailability: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.SalonID != req.SalonID {
			uc.logger.Warn("GetAvailability: service id=%d does not belong to salon=%d", *req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		durationMinutes = service.DurationMinutes
	}

	// 5. Получаем активные бронирования мастера на дату
	bookings, err := uc.bookingRepo.GetByStaffAndDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Строим сетку слотов
	slots, err := computeDaySlots(salon.OpeningTime, salon.ClosingTime, durationMinutes, bookings)
	if err != nil {
		if errors.Is(err, ErrInvalidDuration) {
			uc.logger.Warn("GetAvailability: non-positive slot duration for salon=%d, service=%v",
				req.SalonID, req.ServiceID)
			return nil, ErrInvalidDuration
		}
		uc.logger.Error("GetAvailability: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: computed %d slots for staff=%d, date=%s",
		len(slots), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		SalonID:         req.SalonID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}
