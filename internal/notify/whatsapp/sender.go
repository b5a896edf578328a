package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/notify/sms"
	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sender whatsapp-канал уведомлений
// Текст сообщения совпадает с sms; отличается только шлюз доставки.
// Без настроенного gatewayURL работает заглушкой
type Sender struct {
	gatewayURL string
	httpClient *http.Client
	logger     Logger
}

// NewSender создает whatsapp-канал
func NewSender(gatewayURL string, timeout time.Duration, logger Logger) *Sender {
	return &Sender{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name возвращает имя канала
func (s *Sender) Name() string {
	return "whatsapp"
}

// Send доставляет сообщение на шлюз или в лог
func (s *Sender) Send(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) error {
	if data.CustomerPhone == "" {
		return fmt.Errorf("whatsapp: recipient phone is empty for booking id=%d", data.BookingID)
	}

	text := sms.ComposeText(notificationType, data)

	if s.gatewayURL == "" {
		s.logger.Info("WhatsApp stub: booking_id=%d to=%s text=%q", data.BookingID, data.CustomerPhone, text)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"phone": data.CustomerPhone,
		"text":  text,
	})
	if err != nil {
		return fmt.Errorf("whatsapp: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp: gateway returned status %d", resp.StatusCode)
	}

	return nil
}
