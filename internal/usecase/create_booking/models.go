package create_booking

import (
	"time"

	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	SalonID    int64            // ID салона
	ServiceID  int64            // ID услуги
	StaffID    int64            // ID мастера
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	EndTime    types.TimeString // Время конца слота (например, "11:00")
	Status     *string          // Начальный статус (опционально, по умолчанию pending)
	Notes      *string          // Дополнительные пожелания (опционально)

	// Контакты клиента для уведомлений (опционально)
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	CustomerID  int64            // ID клиента
	SalonID     int64            // ID салона
	ServiceID   int64            // ID услуги
	StaffID     int64            // ID мастера
	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время окончания
	Status      string           // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	StaffName    string  // Имя мастера
	Notes        *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
