package domain

import (
	"time"

	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// Salon represents a salon listing
type Salon struct {
	ID          int64
	OwnerID     int64
	Name        string
	City        string
	Address     string
	Phone       *string
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	Rating      float64
	ReviewCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpenAt returns true if the given wall clock time falls inside opening hours
func (s *Salon) IsOpenAt(t types.TimeString) bool {
	return !t.IsBefore(s.OpeningTime) && t.IsBefore(s.ClosingTime)
}

// SalonService represents a service offered by a salon
// Its duration determines the slot granularity for bookings of this service
type SalonService struct {
	ID              int64
	SalonID         int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Staff represents a staff member; bookings are scheduled per staff member
type Staff struct {
	ID        int64
	SalonID   int64
	Name      string
	Specialty *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalonsFilter фильтр для поиска салонов
type SalonsFilter struct {
	City      *string  // Фильтр по городу (опционально)
	MinRating *float64 // Минимальный рейтинг (опционально)
}
