package models

import (
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	serviceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

// Request модели

// CreateSalonRequest запрос на создание салона
type CreateSalonRequest struct {
	OwnerID     int64   `json:"ownerId"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone,omitempty"`
	OpeningTime string  `json:"openingTime"` // "09:00"
	ClosingTime string  `json:"closingTime"` // "21:00"
}

// UpdateSalonRequest запрос на частичное обновление салона
type UpdateSalonRequest struct {
	UserID      int64   `json:"userId"`
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	OpeningTime *string `json:"openingTime,omitempty"`
	ClosingTime *string `json:"closingTime,omitempty"`
}

// ToRepoUpdate конвертирует запрос в частичное обновление для репозитория
func (r *UpdateSalonRequest) ToRepoUpdate() (salonRepo.SalonUpdate, error) {
	upd := salonRepo.SalonUpdate{
		Name:    r.Name,
		City:    r.City,
		Address: r.Address,
		Phone:   r.Phone,
	}

	if r.OpeningTime != nil {
		t, err := types.NewTimeStringFromString(*r.OpeningTime)
		if err != nil {
			return upd, err
		}
		upd.OpeningTime = &t
	}
	if r.ClosingTime != nil {
		t, err := types.NewTimeStringFromString(*r.ClosingTime)
		if err != nil {
			return upd, err
		}
		upd.ClosingTime = &t
	}

	return upd, nil
}

// ListSalonsRequest запрос на поиск салонов
type ListSalonsRequest struct {
	City      *string  `json:"city,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64   `json:"userId"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// UpdateServiceRequest запрос на частичное обновление услуги
type UpdateServiceRequest struct {
	UserID          int64    `json:"userId"`
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
}

// ToRepoUpdate конвертирует запрос в частичное обновление для репозитория
func (r *UpdateServiceRequest) ToRepoUpdate() serviceRepo.ServiceUpdate {
	return serviceRepo.ServiceUpdate{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}

// CreateStaffRequest запрос на добавление мастера
type CreateStaffRequest struct {
	UserID    int64   `json:"userId"`
	Name      string  `json:"name"`
	Specialty *string `json:"specialty,omitempty"`
}

// UpdateStaffRequest запрос на частичное обновление мастера
type UpdateStaffRequest struct {
	UserID    int64   `json:"userId"`
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
}

// ToRepoUpdate конвертирует запрос в частичное обновление для репозитория
func (r *UpdateStaffRequest) ToRepoUpdate() staffRepo.StaffUpdate {
	return staffRepo.StaffUpdate{
		Name:      r.Name,
		Specialty: r.Specialty,
	}
}

// Response модели

// SalonResponse ответ с данными салона
type SalonResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone,omitempty"`
	OpeningTime string    `json:"openingTime"`
	ClosingTime string    `json:"closingTime"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SalonListResponse ответ со списком салонов
type SalonListResponse struct {
	Salons []SalonResponse `json:"salons"`
	Total  int             `json:"total"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	SalonID         int64     `json:"salonId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salonId"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
	Total int             `json:"total"`
}

// Конвертеры

// FromDomainSalon конвертирует domain.Salon в SalonResponse
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	return &SalonResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		City:        s.City,
		Address:     s.Address,
		Phone:       s.Phone,
		OpeningTime: s.OpeningTime.String(),
		ClosingTime: s.ClosingTime.String(),
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSalonList конвертирует список domain.Salon в SalonListResponse
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	resp := &SalonListResponse{
		Salons: make([]SalonResponse, 0, len(salons)),
		Total:  len(salons),
	}
	for _, s := range salons {
		resp.Salons = append(resp.Salons, *FromDomainSalon(s))
	}
	return resp
}

// FromDomainService конвертирует domain.SalonService в ServiceResponse
func FromDomainService(s *domain.SalonService) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		SalonID:         s.SalonID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в ServiceListResponse
func FromDomainServiceList(services []*domain.SalonService) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
		Total:    len(services),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainStaff конвертирует domain.Staff в StaffResponse
func FromDomainStaff(m *domain.Staff) *StaffResponse {
	return &StaffResponse{
		ID:        m.ID,
		SalonID:   m.SalonID,
		Name:      m.Name,
		Specialty: m.Specialty,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainStaffList конвертирует список мастеров в StaffListResponse
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{
		Staff: make([]StaffResponse, 0, len(staff)),
		Total: len(staff),
	}
	for _, m := range staff {
		resp.Staff = append(resp.Staff, *FromDomainStaff(m))
	}
	return resp
}
