package notifications

import (
	"context"
	"sync"

	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// Service диспетчер уведомлений о событиях бронирования
// Сервис stateless и передается зависимостью (не синглтон): каналы
// инжектируются при создании, отправка идет по всем каналам параллельно.
// Доставка best-effort: ошибка канала логируется и не влияет ни на другие
// каналы, ни на результат бизнес-операции
type Service struct {
	channels []Channel
	metrics  MetricsRecorder
	logger   Logger
}

// NewService создает новый диспетчер уведомлений
// metrics может быть nil, если сбор метрик отключен
func NewService(channels []Channel, metrics MetricsRecorder, logger Logger) *Service {
	return &Service{
		channels: channels,
		metrics:  metrics,
		logger:   logger,
	}
}

// SendBookingConfirmation отправляет подтверждение бронирования
func (s *Service) SendBookingConfirmation(ctx context.Context, data models.BookingNotification) []models.ChannelResult {
	return s.dispatch(ctx, models.TypeBookingConfirmation, data)
}

// SendBookingReminder отправляет напоминание о предстоящем бронировании
func (s *Service) SendBookingReminder(ctx context.Context, data models.BookingNotification) []models.ChannelResult {
	return s.dispatch(ctx, models.TypeBookingReminder, data)
}

// SendBookingCancellation отправляет уведомление об отмене
func (s *Service) SendBookingCancellation(ctx context.Context, data models.BookingNotification) []models.ChannelResult {
	return s.dispatch(ctx, models.TypeBookingCancellation, data)
}

// SendBookingReschedule отправляет уведомление о переносе
// data должна содержать старые и новые дату/время
func (s *Service) SendBookingReschedule(ctx context.Context, data models.BookingNotification) []models.ChannelResult {
	return s.dispatch(ctx, models.TypeBookingReschedule, data)
}

// Send отправляет уведомление указанного типа
// Используется обработчиком POST /notifications/send
func (s *Service) Send(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) ([]models.ChannelResult, error) {
	if _, err := models.ToNotificationType(string(notificationType)); err != nil {
		return nil, ErrInvalidType
	}
	return s.dispatch(ctx, notificationType, data), nil
}

// dispatch рассылает уведомление по всем каналам параллельно и дожидается всех
// Ошибки каналов независимы: падение одного не блокирует остальные
func (s *Service) dispatch(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) []models.ChannelResult {
	results := make([]models.ChannelResult, len(s.channels))

	var wg sync.WaitGroup
	for i, ch := range s.channels {
		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()

			result := models.ChannelResult{Channel: ch.Name()}

			if err := ch.Send(ctx, notificationType, data); err != nil {
				result.Success = false
				result.Error = err.Error()
				s.logger.Warn("Notifications: channel=%s type=%s booking_id=%d failed: %v",
					ch.Name(), notificationType, data.BookingID, err)
				s.record(notificationType, ch.Name(), "error")
			} else {
				result.Success = true
				s.record(notificationType, ch.Name(), "ok")
			}

			results[i] = result
		}(i, ch)
	}
	wg.Wait()

	s.logger.Info("Notifications: dispatched type=%s booking_id=%d to %d channels",
		notificationType, data.BookingID, len(s.channels))

	return results
}

func (s *Service) record(notificationType models.NotificationType, channel, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordNotification(string(notificationType), channel, status)
}
