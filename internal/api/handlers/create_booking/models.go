package create_booking

import (
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	createBooking "github.com/glowpoint/salon-booking-service/internal/usecase/create_booking"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID     int64   `json:"salonId"`
	ServiceID   int64   `json:"serviceId"`
	StaffID     int64   `json:"staffId"`
	BookingDate string  `json:"bookingDate"` // "2026-03-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "11:00"
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	// Контакты для уведомлений (опционально)
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customerId"`
	SalonID      int64   `json:"salonId"`
	ServiceID    int64   `json:"serviceId"`
	StaffID      int64   `json:"staffId"`
	BookingDate  string  `json:"bookingDate"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	StaffName    string  `json:"staffName"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:    customerID,
		SalonID:       r.SalonID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Status:        r.Status,
		Notes:         r.Notes,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		CustomerID:   resp.CustomerID,
		SalonID:      resp.SalonID,
		ServiceID:    resp.ServiceID,
		StaffID:      resp.StaffID,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		StaffName:    resp.StaffName,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
