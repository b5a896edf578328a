package models

import "errors"

var (
	// ErrInvalidType возвращается при неизвестном типе уведомления
	ErrInvalidType = errors.New("invalid notification type")
)

// NotificationType тип события жизненного цикла бронирования
type NotificationType string

const (
	TypeBookingConfirmation NotificationType = "booking_confirmation"
	TypeBookingReminder     NotificationType = "booking_reminder"
	TypeBookingCancellation NotificationType = "booking_cancellation"
	TypeBookingReschedule   NotificationType = "booking_reschedule"
)

// ToNotificationType конвертирует строку в NotificationType с валидацией
func ToNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)

	switch t {
	case TypeBookingConfirmation, TypeBookingReminder, TypeBookingCancellation, TypeBookingReschedule:
		return t, nil
	}

	return "", ErrInvalidType
}

// BookingNotification плоская запись с данными для уведомления
// Каналы сами решают, какие поля использовать
type BookingNotification struct {
	BookingID     int64  `json:"bookingId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	SalonName     string `json:"salonName"`
	ServiceName   string `json:"serviceName"`
	StaffName     string `json:"staffName,omitempty"`
	BookingDate   string `json:"bookingDate"` // "2025-10-15"
	StartTime     string `json:"startTime"`   // "10:00"
	EndTime       string `json:"endTime,omitempty"`

	// Заполняются только для переноса бронирования
	OldBookingDate string `json:"oldBookingDate,omitempty"`
	OldStartTime   string `json:"oldStartTime,omitempty"`
}

// ChannelResult результат отправки по одному каналу
// Ошибка канала фиксируется здесь и никогда не прерывает остальные каналы
type ChannelResult struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
