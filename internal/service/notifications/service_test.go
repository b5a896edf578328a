package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeChannel struct {
	name string
	err  error

	mu    sync.Mutex
	calls []models.NotificationType
}

func (c *fakeChannel) Name() string {
	return c.name
}

func (c *fakeChannel) Send(ctx context.Context, notificationType models.NotificationType, data models.BookingNotification) error {
	c.mu.Lock()
	c.calls = append(c.calls, notificationType)
	c.mu.Unlock()
	return c.err
}

type fakeMetrics struct {
	mu      sync.Mutex
	records [][3]string
}

func (m *fakeMetrics) RecordNotification(notificationType, channel, status string) {
	m.mu.Lock()
	m.records = append(m.records, [3]string{notificationType, channel, status})
	m.mu.Unlock()
}

func TestDispatch_AllChannelsReceiveNotification(t *testing.T) {
	email := &fakeChannel{name: "email"}
	sms := &fakeChannel{name: "sms"}
	whatsapp := &fakeChannel{name: "whatsapp"}

	svc := NewService([]Channel{email, sms, whatsapp}, nil, noopLogger{})

	results := svc.SendBookingConfirmation(context.Background(), models.BookingNotification{BookingID: 1})

	require.Len(t, results, 3)
	for _, result := range results {
		assert.True(t, result.Success, result.Channel)
		assert.Empty(t, result.Error)
	}

	assert.Equal(t, []models.NotificationType{models.TypeBookingConfirmation}, email.calls)
	assert.Equal(t, []models.NotificationType{models.TypeBookingConfirmation}, sms.calls)
	assert.Equal(t, []models.NotificationType{models.TypeBookingConfirmation}, whatsapp.calls)
}

func TestDispatch_ChannelFailureDoesNotBlockOthers(t *testing.T) {
	email := &fakeChannel{name: "email", err: errors.New("smtp unreachable")}
	sms := &fakeChannel{name: "sms"}

	svc := NewService([]Channel{email, sms}, nil, noopLogger{})

	results := svc.SendBookingCancellation(context.Background(), models.BookingNotification{BookingID: 2})

	require.Len(t, results, 2)

	// Порядок результатов соответствует порядку каналов
	assert.Equal(t, "email", results[0].Channel)
	assert.False(t, results[0].Success)
	assert.Equal(t, "smtp unreachable", results[0].Error)

	assert.Equal(t, "sms", results[1].Channel)
	assert.True(t, results[1].Success)

	// Упавший канал не помешал доставке по рабочему
	assert.Len(t, sms.calls, 1)
}

func TestDispatch_RecordsMetricsPerChannel(t *testing.T) {
	email := &fakeChannel{name: "email"}
	sms := &fakeChannel{name: "sms", err: errors.New("gateway timeout")}
	metrics := &fakeMetrics{}

	svc := NewService([]Channel{email, sms}, metrics, noopLogger{})
	svc.SendBookingReminder(context.Background(), models.BookingNotification{BookingID: 3})

	require.Len(t, metrics.records, 2)
	assert.Contains(t, metrics.records, [3]string{"booking_reminder", "email", "ok"})
	assert.Contains(t, metrics.records, [3]string{"booking_reminder", "sms", "error"})
}

func TestSend_ValidatesNotificationType(t *testing.T) {
	email := &fakeChannel{name: "email"}
	svc := NewService([]Channel{email}, nil, noopLogger{})

	results, err := svc.Send(context.Background(), models.TypeBookingReschedule, models.BookingNotification{BookingID: 4})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	_, err = svc.Send(context.Background(), "carrier_pigeon", models.BookingNotification{BookingID: 4})
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Len(t, email.calls, 1)
}

func TestDispatch_NoChannels(t *testing.T) {
	svc := NewService(nil, nil, noopLogger{})

	results := svc.SendBookingConfirmation(context.Background(), models.BookingNotification{BookingID: 5})
	assert.Empty(t, results)
}
