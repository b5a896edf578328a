package email

import (
	"context"
	"fmt"

	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sender email-канал уведомлений
// Канал работает в режиме заглушки: собирает полноценное RFC 5322 сообщение
// и пишет его в лог вместо отправки через SMTP
type Sender struct {
	from   string
	logger Logger
}

// NewSender создает email-канал
func NewSender(from string, logger Logger) *Sender {
	if from == "" {
		from = "no-reply@glowpoint.local"
	}
	return &Sender{from: from, logger: logger}
}

// Name возвращает имя канала
func (s *Sender) Name() string {
	return "email"
}

// Send форматирует письмо и логирует его
func (s *Sender) Send(_ context.Context, notificationType models.NotificationType, data models.BookingNotification) error {
	if data.CustomerEmail == "" {
		return fmt.Errorf("email: recipient address is empty for booking id=%d", data.BookingID)
	}

	subject, body := composeEmail(notificationType, data)
	msg := buildMessage(s.from, data.CustomerEmail, subject, body)

	s.logger.Info("Email stub: booking_id=%d to=%s\n%s", data.BookingID, data.CustomerEmail, msg)
	return nil
}

func composeEmail(notificationType models.NotificationType, data models.BookingNotification) (subject, body string) {
	switch notificationType {
	case models.TypeBookingConfirmation:
		subject = fmt.Sprintf("Запись №%d подтверждена", data.BookingID)
		body = fmt.Sprintf("%s, ваша запись в салон %q (%s, мастер %s) на %s в %s подтверждена.",
			data.CustomerName, data.SalonName, data.ServiceName, data.StaffName, data.BookingDate, data.StartTime)

	case models.TypeBookingReminder:
		subject = fmt.Sprintf("Напоминание о записи №%d", data.BookingID)
		body = fmt.Sprintf("%s, напоминаем о записи в салон %q на %s в %s.",
			data.CustomerName, data.SalonName, data.BookingDate, data.StartTime)

	case models.TypeBookingCancellation:
		subject = fmt.Sprintf("Запись №%d отменена", data.BookingID)
		body = fmt.Sprintf("%s, ваша запись в салон %q на %s в %s отменена.",
			data.CustomerName, data.SalonName, data.BookingDate, data.StartTime)

	case models.TypeBookingReschedule:
		subject = fmt.Sprintf("Запись №%d перенесена", data.BookingID)
		body = fmt.Sprintf("%s, ваша запись в салон %q перенесена с %s %s на %s %s.",
			data.CustomerName, data.SalonName, data.OldBookingDate, data.OldStartTime, data.BookingDate, data.StartTime)

	default:
		subject = fmt.Sprintf("Уведомление по записи №%d", data.BookingID)
		body = fmt.Sprintf("%s, статус вашей записи в салон %q изменился.", data.CustomerName, data.SalonName)
	}

	return subject, body
}

// buildMessage собирает минимальное RFC 5322 сообщение
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
