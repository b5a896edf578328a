package promotions

import (
	"context"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	promoRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/promotion"
)

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error)
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	ListBySalon(ctx context.Context, salonID int64, activeOn *time.Time) ([]*domain.Promotion, error)
	Update(ctx context.Context, id int64, upd promoRepo.PromotionUpdate) error
	Delete(ctx context.Context, id int64) error
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
