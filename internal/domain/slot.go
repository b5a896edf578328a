package domain

import "github.com/glowpoint/salon-booking-service/pkg/types"

// TimeSlot represents a [start, end) time interval within a single day
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps reports whether two half-open intervals intersect.
// Touching boundaries (one ends exactly where the other starts) is not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.StartTime.IsBefore(other.EndTime) && s.EndTime.IsAfter(other.StartTime)
}
