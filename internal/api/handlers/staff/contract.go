package staff

import (
	"context"

	"github.com/glowpoint/salon-booking-service/internal/service/salons/models"
)

type StaffService interface {
	CreateStaff(ctx context.Context, salonID int64, req *models.CreateStaffRequest) (*models.StaffResponse, error)
	ListStaff(ctx context.Context, salonID int64) (*models.StaffListResponse, error)
	UpdateStaff(ctx context.Context, salonID, staffID int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
	DeleteStaff(ctx context.Context, salonID, staffID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
