package promotions

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/promotions/models"
)

type PromotionService interface {
	Create(ctx context.Context, salonID int64, req *models.CreatePromotionRequest) (*models.PromotionResponse, error)
	ListBySalon(ctx context.Context, req *models.ListPromotionsRequest) (*models.PromotionListResponse, error)
	Update(ctx context.Context, salonID, promotionID int64, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error)
	Delete(ctx context.Context, salonID, promotionID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
