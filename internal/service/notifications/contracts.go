package notifications

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// Channel канал доставки уведомлений (email, sms, whatsapp)
// Реализации обязаны быть безопасными для конкурентного использования
type Channel interface {
	Name() string
	Send(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) error
}

// MetricsRecorder счетчик отправленных уведомлений (опционально, может быть nil)
type MetricsRecorder interface {
	RecordNotification(notificationType, channel, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
