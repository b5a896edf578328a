package models

import (
	"errors"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	promoRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/promotion"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")
)

// CreatePromotionRequest запрос на создание акции
type CreatePromotionRequest struct {
	UserID          int64   `json:"userId"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DiscountPercent int     `json:"discountPercent"`
	ValidFrom       string  `json:"validFrom"` // "2026-03-01"
	ValidTo         string  `json:"validTo"`   // "2026-03-31"
}

// UpdatePromotionRequest запрос на частичное обновление акции
type UpdatePromotionRequest struct {
	UserID          int64   `json:"userId"`
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	DiscountPercent *int    `json:"discountPercent,omitempty"`
	ValidFrom       *string `json:"validFrom,omitempty"`
	ValidTo         *string `json:"validTo,omitempty"`
}

// ToRepoUpdate конвертирует запрос в частичное обновление для репозитория
func (r *UpdatePromotionRequest) ToRepoUpdate() (promoRepo.PromotionUpdate, error) {
	upd := promoRepo.PromotionUpdate{
		Title:           r.Title,
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
	}

	if r.ValidFrom != nil {
		t, err := time.Parse(domain.DateFormat, *r.ValidFrom)
		if err != nil {
			return upd, ErrInvalidDate
		}
		upd.ValidFrom = &t
	}
	if r.ValidTo != nil {
		t, err := time.Parse(domain.DateFormat, *r.ValidTo)
		if err != nil {
			return upd, ErrInvalidDate
		}
		upd.ValidTo = &t
	}

	return upd, nil
}

// ListPromotionsRequest запрос на получение акций салона
type ListPromotionsRequest struct {
	SalonID    int64 `json:"salonId"`
	ActiveOnly bool  `json:"activeOnly,omitempty"` // Только действующие на текущую дату
}

// PromotionResponse ответ с данными акции
type PromotionResponse struct {
	ID              int64     `json:"id"`
	SalonID         int64     `json:"salonId"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	DiscountPercent int       `json:"discountPercent"`
	ValidFrom       string    `json:"validFrom"`
	ValidTo         string    `json:"validTo"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PromotionListResponse ответ со списком акций
type PromotionListResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	Total      int                 `json:"total"`
}

// FromDomainPromotion конвертирует domain.Promotion в PromotionResponse
func FromDomainPromotion(p *domain.Promotion) *PromotionResponse {
	return &PromotionResponse{
		ID:              p.ID,
		SalonID:         p.SalonID,
		Title:           p.Title,
		Description:     p.Description,
		DiscountPercent: p.DiscountPercent,
		ValidFrom:       p.ValidFrom.Format(domain.DateFormat),
		ValidTo:         p.ValidTo.Format(domain.DateFormat),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainPromotionList конвертирует список акций в PromotionListResponse
func FromDomainPromotionList(promotions []*domain.Promotion) *PromotionListResponse {
	resp := &PromotionListResponse{
		Promotions: make([]PromotionResponse, 0, len(promotions)),
		Total:      len(promotions),
	}
	for _, p := range promotions {
		resp.Promotions = append(resp.Promotions, *FromDomainPromotion(p))
	}
	return resp
}
