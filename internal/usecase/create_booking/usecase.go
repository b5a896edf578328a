package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	bookingRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/booking"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	serviceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
	notifyModels "github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости слота и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса не смогли занять один и тот же слот.
// Уникальный индекс по (staff_id, booking_date, start_time) страхует от гонки
// на уровне БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, salon=%d, service=%d, staff=%d, date=%s, time=%s",
		req.CustomerID, req.SalonID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата и время не в прошлом
	if err := validateDate(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 5. Получаем услугу и проверяем её принадлежность салону
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID {
		uc.logger.Warn("CreateBooking: service id=%d does not belong to salon=%d", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 6. Получаем мастера и проверяем его принадлежность салону
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if member.SalonID != req.SalonID {
		uc.logger.Warn("CreateBooking: staff id=%d does not belong to salon=%d", req.StaffID, req.SalonID)
		return nil, ErrStaffNotFound
	}

	// 7. Слот должен целиком попадать в часы работы салона
	if err := validateWorkingHours(salon, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: slot %s-%s is outside working hours %s-%s",
			req.StartTime, req.EndTime, salon.OpeningTime, salon.ClosingTime)
		return nil, err
	}

	// 8. Начальный статус по умолчанию pending, клиент может передать confirmed
	status := domain.StatusPending
	if req.Status != nil {
		status, err = parseInitialStatus(*req.Status)
		if err != nil {
			return nil, err
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 9. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Получаем активные бронирования мастера на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByStaffAndDate(txCtx, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.2. Проверяем пересечение с существующими бронированиями
		slot := domain.TimeSlot{StartTime: req.StartTime, EndTime: req.EndTime}
		if hasOverlap(slot, bookings) {
			uc.logger.Warn("CreateBooking: slot %s-%s is taken for staff=%d on %s",
				req.StartTime, req.EndTime, req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 9.3. Создаем бронирование с денормализацией данных услуги и мастера
		booking := &domain.Booking{
			CustomerID:  req.CustomerID,
			SalonID:     req.SalonID,
			ServiceID:   req.ServiceID,
			StaffID:     req.StaffID,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      status,
			// Денормализация для истории
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			StaffName:    member.Name,
			// Контакты клиента сохраняются на брони: отмена и перенос
			// отправляют уведомления без обращения к внешнему профилю
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 10. Подтверждение клиенту best-effort: сбой каналов бронирование не отменяет
	uc.notifier.SendBookingConfirmation(ctx, notifyModels.BookingNotification{
		BookingID:     result.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SalonName:     salon.Name,
		ServiceName:   result.ServiceName,
		StaffName:     result.StaffName,
		BookingDate:   result.BookingDate.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
		EndTime:       result.EndTime.String(),
	})

	// Конвертируем в response
	return &Response{
		ID:           result.ID,
		CustomerID:   result.CustomerID,
		SalonID:      result.SalonID,
		ServiceID:    result.ServiceID,
		StaffID:      result.StaffID,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		StaffName:    result.StaffName,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
