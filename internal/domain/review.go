package domain

import "time"

// Review represents a customer review of a salon
type Review struct {
	ID         int64
	SalonID    int64
	CustomerID int64
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}

// Promotion represents a time-bounded discount offered by a salon
type Promotion struct {
	ID              int64
	SalonID         int64
	Title           string
	Description     *string
	DiscountPercent int
	ValidFrom       time.Time
	ValidTo         time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActiveOn returns true if the promotion is valid on the given date
func (p *Promotion) IsActiveOn(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return !day.Before(p.ValidFrom) && !day.After(p.ValidTo)
}
