package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	reviewRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/review"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	"github.com/glowpoint/salon-booking-service/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo ReviewRepository
	salonRepo  SalonRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	salonRepo SalonRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		salonRepo:  salonRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает отзыв и пересчитывает рейтинг салона
// Создание отзыва и обновление агрегатов выполняются в одной транзакции,
// чтобы рейтинг салона всегда соответствовал его отзывам
func (s *Service) Create(ctx context.Context, salonID int64, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: creating review for salon=%d by customer=%d, rating=%d", salonID, req.CustomerID, req.Rating)

	if req.Rating < domain.MinReviewRating || req.Rating > domain.MaxReviewRating {
		s.logger.Warn("Create: invalid rating=%d for salon=%d", req.Rating, salonID)
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, domain.MinReviewRating, domain.MaxReviewRating)
	}

	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	review := &domain.Review{
		SalonID:    salonID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	var created *domain.Review
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.reviewRepo.Create(txCtx, review)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrDuplicateReview) {
				return ErrDuplicateReview
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		avg, count, err := s.reviewRepo.AggregateBySalon(txCtx, salonID)
		if err != nil {
			return fmt.Errorf("%w: Create - failed to aggregate reviews: %v", ErrInternal, err)
		}

		if err := s.salonRepo.UpdateRating(txCtx, salonID, avg, count); err != nil {
			return fmt.Errorf("%w: Create - failed to update salon rating: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateReview) {
			s.logger.Warn("Create: duplicate review for salon=%d by customer=%d", salonID, req.CustomerID)
		} else {
			s.logger.Error("Create: transaction failed for salon=%d: %v", salonID, err)
		}
		return nil, err
	}

	s.logger.Info("Create: successfully created review id=%d for salon=%d", created.ID, salonID)
	return models.FromDomainReview(created), nil
}

// ListBySalon возвращает отзывы салона вместе со средним рейтингом
func (s *Service) ListBySalon(ctx context.Context, salonID int64) (*models.ReviewListResponse, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("ListBySalon: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("ListBySalon: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListBySalon - repository error: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("ListBySalon: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySalon: fetched %d reviews for salon=%d", len(reviews), salonID)
	return models.FromDomainReviewList(reviews, salon.Rating), nil
}
