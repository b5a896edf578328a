package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

func activeBooking(start, end string) *domain.Booking {
	return &domain.Booking{
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func TestComputeDaySlots_FullDayGrid(t *testing.T) {
	slots, err := computeDaySlots("09:00", "12:00", 30, nil)
	require.NoError(t, err)

	require.Len(t, slots, 6)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), slots[0].EndTime)
	assert.Equal(t, types.TimeString("11:30"), slots[5].StartTime)
	assert.Equal(t, types.TimeString("12:00"), slots[5].EndTime)

	for _, slot := range slots {
		assert.False(t, slot.IsBooked)
	}
}

func TestComputeDaySlots_DropsPartialTrailingSlot(t *testing.T) {
	// 09:00-10:10 при шаге 45 минут: 09:00-09:45 помещается, 09:45-10:30 нет
	slots, err := computeDaySlots("09:00", "10:10", 45, nil)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:45"), slots[0].EndTime)
}

func TestComputeDaySlots_MarksOverlappingSlotsBooked(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking("11:20", "11:40"),
	}

	slots, err := computeDaySlots("11:00", "13:00", 30, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	// 11:00-11:30 и 11:30-12:00 пересекаются с бронированием 11:20-11:40
	assert.True(t, slots[0].IsBooked)
	assert.True(t, slots[1].IsBooked)
	assert.False(t, slots[2].IsBooked)
	assert.False(t, slots[3].IsBooked)
}

func TestComputeDaySlots_ShortMorning(t *testing.T) {
	// Час работы делится ровно на два получасовых слота
	slots, err := computeDaySlots("09:00", "10:00", 30, nil)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].IsBooked)
	assert.False(t, slots[1].IsBooked)

	// Подтвержденное бронирование 09:00-09:30 занимает ровно первый слот
	slots, err = computeDaySlots("09:00", "10:00", 30, []*domain.Booking{
		activeBooking("09:00", "09:30"),
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].IsBooked)
	assert.False(t, slots[1].IsBooked)
}

func TestComputeDaySlots_TouchingBoundariesAreFree(t *testing.T) {
	bookings := []*domain.Booking{
		// Заканчивается ровно в начало слота 11:30-12:00
		activeBooking("11:00", "11:30"),
		// Начинается ровно в конец слота 11:30-12:00
		activeBooking("12:00", "12:30"),
	}

	slots, err := computeDaySlots("11:30", "12:00", 30, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsBooked)
}

func TestComputeDaySlots_IgnoresInactiveBookings(t *testing.T) {
	cancelled := activeBooking("10:00", "10:30")
	cancelled.Status = domain.StatusCancelled
	completed := activeBooking("10:30", "11:00")
	completed.Status = domain.StatusCompleted

	slots, err := computeDaySlots("10:00", "11:00", 30, []*domain.Booking{cancelled, completed})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].IsBooked)
	assert.False(t, slots[1].IsBooked)
}

func TestComputeDaySlots_DegenerateWorkingHours(t *testing.T) {
	slots, err := computeDaySlots("18:00", "09:00", 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = computeDaySlots("10:00", "10:00", 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeDaySlots_InvalidDuration(t *testing.T) {
	_, err := computeDaySlots("09:00", "18:00", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = computeDaySlots("09:00", "18:00", -15, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestComputeDaySlots_MalformedWorkingHours(t *testing.T) {
	_, err := computeDaySlots("garbage", "18:00", 30, nil)
	assert.Error(t, err)

	_, err = computeDaySlots("09:00", "garbage", 30, nil)
	assert.Error(t, err)
}
