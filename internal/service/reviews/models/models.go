package models

import (
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	CustomerID int64   `json:"customerId"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment,omitempty"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID         int64     `json:"id"`
	SalonID    int64     `json:"salonId"`
	CustomerID int64     `json:"customerId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`

	// Агрегаты салона после учёта отзывов
	AverageRating float64 `json:"averageRating"`
}

// FromDomainReview конвертирует domain.Review в ReviewResponse
func FromDomainReview(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		SalonID:    r.SalonID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список отзывов в ReviewListResponse
func FromDomainReviewList(reviews []*domain.Review, averageRating float64) *ReviewListResponse {
	resp := &ReviewListResponse{
		Reviews:       make([]ReviewResponse, 0, len(reviews)),
		Total:         len(reviews),
		AverageRating: averageRating,
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}
	return resp
}
