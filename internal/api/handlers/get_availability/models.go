package get_availability

import (
	"github.com/glowpoint/salon-booking-service/internal/domain"
	getAvailability "github.com/glowpoint/salon-booking-service/internal/usecase/get_availability"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// BookedSlotResponse HTTP модель занятого слота
type BookedSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

// AvailabilityResponse HTTP модель ответа
type AvailabilityResponse struct {
	SalonID         int64                `json:"salonId"`
	StaffID         int64                `json:"staffId"`
	ServiceID       *int64               `json:"serviceId,omitempty"`
	Date            string               `json:"date"` // "2026-03-15"
	DurationMinutes int                  `json:"durationMinutes"`
	AvailableSlots  []SlotResponse       `json:"availableSlots"`
	BookedSlots     []BookedSlotResponse `json:"bookedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Сетка слотов раскладывается на две хронологические последовательности:
// свободные и занятые
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	available := make([]SlotResponse, 0, len(resp.Slots))
	booked := make([]BookedSlotResponse, 0)
	for _, slot := range resp.Slots {
		if slot.IsBooked {
			booked = append(booked, BookedSlotResponse{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				IsBooked:  true,
			})
			continue
		}
		available = append(available, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return &AvailabilityResponse{
		SalonID:         resp.SalonID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		AvailableSlots:  available,
		BookedSlots:     booked,
	}
}
