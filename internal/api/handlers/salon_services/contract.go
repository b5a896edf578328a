package salon_services

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/salons/models"
)

type CatalogService interface {
	CreateService(ctx context.Context, salonID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error)
	UpdateService(ctx context.Context, salonID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	DeleteService(ctx context.Context, salonID, serviceID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
