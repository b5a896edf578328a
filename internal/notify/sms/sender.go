package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sender sms-канал уведомлений
// Если gatewayURL не задан, канал работает заглушкой и только логирует текст.
// Если задан - сообщение отправляется POST-запросом на SMS шлюз
type Sender struct {
	gatewayURL string
	token      string
	httpClient *http.Client
	logger     Logger
}

// NewSender создает sms-канал
func NewSender(gatewayURL, token string, timeout time.Duration, logger Logger) *Sender {
	return &Sender{
		gatewayURL: gatewayURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name возвращает имя канала
func (s *Sender) Name() string {
	return "sms"
}

// Send форматирует короткое сообщение и доставляет его на шлюз (или в лог)
func (s *Sender) Send(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) error {
	if data.CustomerPhone == "" {
		return fmt.Errorf("sms: recipient phone is empty for booking id=%d", data.BookingID)
	}

	body := ComposeText(notificationType, data)

	if s.gatewayURL == "" {
		s.logger.Info("SMS stub: booking_id=%d to=%s text=%q", data.BookingID, data.CustomerPhone, body)
		return nil
	}

	return s.post(ctx, data.CustomerPhone, body)
}

func (s *Sender) post(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]string{
		"to":   to,
		"body": body,
	})
	if err != nil {
		return fmt.Errorf("sms: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sms: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms: gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// ComposeText собирает короткий текст для sms/whatsapp
func ComposeText(notificationType models.NotificationType, data models.BookingNotification) string {
	switch notificationType {
	case models.TypeBookingConfirmation:
		return fmt.Sprintf("Запись №%d: %s, %s в %s. Подтверждена.",
			data.BookingID, data.SalonName, data.BookingDate, data.StartTime)

	case models.TypeBookingReminder:
		return fmt.Sprintf("Напоминание: запись №%d, %s, %s в %s.",
			data.BookingID, data.SalonName, data.BookingDate, data.StartTime)

	case models.TypeBookingCancellation:
		return fmt.Sprintf("Запись №%d в %s на %s %s отменена.",
			data.BookingID, data.SalonName, data.BookingDate, data.StartTime)

	case models.TypeBookingReschedule:
		return fmt.Sprintf("Запись №%d перенесена: %s %s -> %s %s.",
			data.BookingID, data.OldBookingDate, data.OldStartTime, data.BookingDate, data.StartTime)

	default:
		return fmt.Sprintf("Обновление по записи №%d в %s.", data.BookingID, data.SalonName)
	}
}
