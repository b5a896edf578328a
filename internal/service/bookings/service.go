package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	bookingRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/booking"
	"github.com/glowpoint/salon-booking-service/internal/service/bookings/models"
	notifyModels "github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент может видеть только собственное бронирование
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for customer=%d", id, customerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to booking id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включение отменённых
//
// Примеры использования:
// - Все активные бронирования: GetSalonBookings(ctx, &GetSalonBookingsRequest{SalonID: 123})
// - Бронирования конкретного мастера: указать StaffID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%d", req.SalonID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем, что салон существует
	if _, err := s.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		s.logger.Warn("GetSalonBookings: salon id=%d not found: %v", req.SalonID, err)
		return nil, ErrSalonNotFound
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только собственное активное бронирование и только
// если до его начала осталось не меньше 24 часов
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by customer=%d", bookingID, req.CustomerID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to booking id=%d", req.CustomerID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.checkLeadTime(booking); err != nil {
		s.logger.Warn("Cancel: booking id=%d starts too soon to cancel", bookingID)
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	// Уведомление best-effort: ошибки каналов не влияют на результат отмены
	s.notifier.SendBookingCancellation(ctx, s.buildNotification(ctx, booking))

	return nil
}

// Reschedule переносит бронирование на новые дату и время
// Перенос разрешён только владельцу активного бронирования, не позднее чем
// за 24 часа до текущего начала. Перезаписываются только дата и время,
// статус и ID сохраняются.
// Проверка пересечения с другими бронированиями мастера выполняется внутри
// serializable-транзакции, чтобы исключить гонку двойного бронирования
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: rescheduling booking id=%d by customer=%d to %s %s",
		bookingID, req.CustomerID, req.BookingDate, req.StartTime)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Reschedule: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Reschedule: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.CustomerID {
		s.logger.Warn("Reschedule: access denied for customer=%d to booking id=%d", req.CustomerID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeRescheduled() {
		s.logger.Warn("Reschedule: booking id=%d cannot be rescheduled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotReschedule
	}

	// Окно в 24 часа считается от текущего (старого) начала бронирования
	if err := s.checkLeadTime(booking); err != nil {
		s.logger.Warn("Reschedule: booking id=%d starts too soon to reschedule", bookingID)
		return nil, err
	}

	newDate, newStart, newEnd, err := s.resolveNewSchedule(booking, req)
	if err != nil {
		return nil, err
	}

	oldDate := booking.BookingDate
	oldStart := booking.StartTime

	// Пересечение проверяется и на уровне приложения, и уникальным индексом в БД.
	// FOR UPDATE внутри транзакции блокирует бронирования мастера на эту дату
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.bookingRepo.GetByStaffAndDate(txCtx, booking.StaffID, newDate)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - failed to load staff bookings: %v", ErrInternal, err)
		}

		newSlot := domain.TimeSlot{StartTime: newStart, EndTime: newEnd}
		for _, other := range existing {
			if other.ID == bookingID {
				continue
			}
			if newSlot.Overlaps(other.Interval()) {
				return ErrSlotConflict
			}
		}

		if err := s.bookingRepo.UpdateSchedule(txCtx, bookingID, newDate, newStart, newEnd); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				return ErrSlotConflict
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			default:
				return fmt.Errorf("%w: Reschedule - failed to update schedule: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			s.logger.Warn("Reschedule: slot conflict for booking id=%d, staff=%d, date=%s start=%s",
				bookingID, booking.StaffID, req.BookingDate, req.StartTime)
		} else {
			s.logger.Error("Reschedule: transaction failed for booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	booking.BookingDate = newDate
	booking.StartTime = newStart
	booking.EndTime = newEnd

	s.logger.Info("Reschedule: successfully rescheduled booking id=%d to %s %s",
		bookingID, req.BookingDate, req.StartTime)

	// Уведомление best-effort: в данных сохраняются старые дата и время
	data := s.buildNotification(ctx, booking)
	data.OldBookingDate = oldDate.Format(domain.DateFormat)
	data.OldStartTime = oldStart.String()
	s.notifier.SendBookingReschedule(ctx, data)

	return models.FromDomainBooking(booking), nil
}

// checkLeadTime проверяет правило 24 часов относительно начала бронирования
func (s *Service) checkLeadTime(booking *domain.Booking) error {
	notice := time.Duration(domain.CancellationNoticeHours) * time.Hour
	if s.timeProvider.Now().Add(notice).After(booking.StartsAt()) {
		return ErrTooLate
	}
	return nil
}

// resolveNewSchedule валидирует новые дату и время переноса
func (s *Service) resolveNewSchedule(booking *domain.Booking, req *models.RescheduleBookingRequest) (time.Time, types.TimeString, types.TimeString, error) {
	newDate, err := time.Parse(domain.DateFormat, req.BookingDate)
	if err != nil {
		s.logger.Warn("Reschedule: invalid booking date=%s for booking id=%d", req.BookingDate, booking.ID)
		return time.Time{}, "", "", fmt.Errorf("%w: invalid booking date", ErrInvalidInput)
	}

	newStart, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("Reschedule: invalid start time=%s for booking id=%d", req.StartTime, booking.ID)
		return time.Time{}, "", "", fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}

	newEnd, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		s.logger.Warn("Reschedule: invalid end time=%s for booking id=%d", req.EndTime, booking.ID)
		return time.Time{}, "", "", fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}

	if !newStart.IsBefore(newEnd) {
		s.logger.Warn("Reschedule: new slot %s-%s has non-positive duration for booking id=%d",
			req.StartTime, req.EndTime, booking.ID)
		return time.Time{}, "", "", ErrInvalidTimeRange
	}

	return newDate, newStart, newEnd, nil
}

// buildNotification собирает данные уведомления из бронирования
// Название салона подтягивается best-effort: его отсутствие не критично
func (s *Service) buildNotification(ctx context.Context, booking *domain.Booking) notifyModels.BookingNotification {
	data := notifyModels.BookingNotification{
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		ServiceName:   booking.ServiceName,
		StaffName:     booking.StaffName,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
		EndTime:       booking.EndTime.String(),
	}

	if salon, err := s.salonRepo.GetByID(ctx, booking.SalonID); err == nil {
		data.SalonName = salon.Name
	} else {
		s.logger.Warn("buildNotification: failed to load salon id=%d: %v", booking.SalonID, err)
	}

	return data
}
