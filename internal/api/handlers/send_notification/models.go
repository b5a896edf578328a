package send_notification

import "github.com/glowpoint/salon-booking-service/internal/service/notifications/models"

// Request запрос на отправку уведомления
type Request struct {
	Type string                     `json:"type"`
	Data models.BookingNotification `json:"data"`
}

// Response результат рассылки по каналам
type Response struct {
	Results []models.ChannelResult `json:"results"`
}
