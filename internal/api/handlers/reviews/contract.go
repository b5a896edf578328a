package reviews

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, salonID int64, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	ListBySalon(ctx context.Context, salonID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
