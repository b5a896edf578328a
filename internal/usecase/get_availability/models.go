package get_availability

import (
	"time"

	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// Request модель запроса на расчет доступности мастера
type Request struct {
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID *int64    // ID услуги (опционально, определяет длительность слота)
	Date      time.Time // Дата, на которую считаются слоты (без времени)
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	SalonID         int64     // ID салона
	StaffID         int64     // ID мастера
	ServiceID       *int64    // ID услуги, если была указана
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Длительность одного слота в минутах
	Slots           []Slot    // Полная сетка слотов: свободные и занятые
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота (например, "10:30")
	IsBooked  bool             // Занят ли слот активным бронированием
}
