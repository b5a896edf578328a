package salons

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/salons/models"
)

type SalonService interface {
	Create(ctx context.Context, req *models.CreateSalonRequest) (*models.SalonResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SalonResponse, error)
	List(ctx context.Context, req *models.ListSalonsRequest) (*models.SalonListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateSalonRequest) (*models.SalonResponse, error)
	Delete(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
