package get_availability

import (
	"fmt"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// computeDaySlots строит полную сетку слотов на день для одного мастера
// Слоты идут подряд от открытия салона с шагом durationMinutes.
// Неполный слот в конце дня (который не успевает завершиться до закрытия)
// отбрасывается. Если closing <= opening, сетка пустая.
//
// Слот помечается занятым, если он пересекается хотя бы с одним активным
// бронированием. Интервалы полуоткрытые [start, end), пересечение считается
// по строгим неравенствам: бронирование, которое заканчивается ровно в момент
// начала слота (или начинается ровно в его конец), слот не занимает.
//
// Примеры:
// - Слот 11:30-12:00, бронирование 11:20-11:40 → слот занят
// - Слот 11:30-12:00, бронирование 11:00-11:30 → слот свободен (граничат)
// - Слот 11:30-12:00, бронирование 12:00-12:30 → слот свободен (граничат)
func computeDaySlots(
	opening, closing types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	openMinutes, err := opening.Minutes()
	if err != nil {
		return nil, fmt.Errorf("malformed opening time %q: %w", opening, err)
	}
	closeMinutes, err := closing.Minutes()
	if err != nil {
		return nil, fmt.Errorf("malformed closing time %q: %w", closing, err)
	}

	// Салон с вырожденными часами работы не принимает записи
	if closeMinutes <= openMinutes {
		return []Slot{}, nil
	}

	// Заранее переводим активные бронирования в минуты от полуночи
	type interval struct {
		start, end int
	}
	busy := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		bStart, err := b.StartTime.Minutes()
		if err != nil {
			continue
		}
		bEnd, err := b.EndTime.Minutes()
		if err != nil {
			continue
		}
		busy = append(busy, interval{start: bStart, end: bEnd})
	}

	slots := make([]Slot, 0, (closeMinutes-openMinutes)/durationMinutes)
	for start := openMinutes; start+durationMinutes <= closeMinutes; start += durationMinutes {
		end := start + durationMinutes

		booked := false
		for _, iv := range busy {
			if start < iv.end && end > iv.start {
				booked = true
				break
			}
		}

		slots = append(slots, Slot{
			StartTime: types.FromMinutes(start),
			EndTime:   types.FromMinutes(end),
			IsBooked:  booked,
		})
	}

	return slots, nil
}
