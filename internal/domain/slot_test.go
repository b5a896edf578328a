package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowpoint/salon-booking-service/pkg/types"
)

func TestTimeSlot_Overlaps(t *testing.T) {
	base := TimeSlot{StartTime: "11:30", EndTime: "12:00"}

	tests := []struct {
		name     string
		other    TimeSlot
		overlaps bool
	}{
		{"inside", TimeSlot{StartTime: "11:40", EndTime: "11:50"}, true},
		{"covers", TimeSlot{StartTime: "11:00", EndTime: "12:30"}, true},
		{"starts before ends inside", TimeSlot{StartTime: "11:20", EndTime: "11:40"}, true},
		{"starts inside ends after", TimeSlot{StartTime: "11:50", EndTime: "12:20"}, true},
		{"touches left boundary", TimeSlot{StartTime: "11:00", EndTime: "11:30"}, false},
		{"touches right boundary", TimeSlot{StartTime: "12:00", EndTime: "12:30"}, false},
		{"fully before", TimeSlot{StartTime: "10:00", EndTime: "10:30"}, false},
		{"fully after", TimeSlot{StartTime: "13:00", EndTime: "13:30"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestBooking_StartsAt(t *testing.T) {
	booking := &Booking{
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("14:30"),
	}

	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), booking.StartsAt())
}

func TestBooking_StatusChecks(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed} {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), string(status))
		assert.True(t, b.CanBeCancelled(), string(status))
		assert.True(t, b.CanBeRescheduled(), string(status))
	}

	for _, status := range []BookingStatus{StatusCancelled, StatusCompleted} {
		b := &Booking{Status: status}
		assert.False(t, b.IsActive(), string(status))
		assert.False(t, b.CanBeCancelled(), string(status))
		assert.False(t, b.CanBeRescheduled(), string(status))
	}
}

func TestSalon_IsOpenAt(t *testing.T) {
	salon := &Salon{OpeningTime: "09:00", ClosingTime: "18:00"}

	assert.True(t, salon.IsOpenAt("09:00"))
	assert.True(t, salon.IsOpenAt("12:00"))
	assert.False(t, salon.IsOpenAt("18:00"))
	assert.False(t, salon.IsOpenAt("08:59"))
}
