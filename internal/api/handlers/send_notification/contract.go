package send_notification

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

type NotificationService interface {
	Send(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) ([]models.ChannelResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
