package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	promoRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/promotion"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	"github.com/glowpoint/salon-booking-service/internal/service/promotions/models"
)

// Service сервис для работы с акциями салонов
type Service struct {
	promoRepo    PromotionRepository
	salonRepo    SalonRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса акций
func NewService(
	promoRepo PromotionRepository,
	salonRepo SalonRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		promoRepo:    promoRepo,
		salonRepo:    salonRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает акцию салона
// Доступно только владельцу салона
func (s *Service) Create(ctx context.Context, salonID int64, req *models.CreatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Create: creating promotion %q for salon=%d by user=%d", req.Title, salonID, req.UserID)

	if _, err := s.checkOwnerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: promotion title is required", ErrInvalidInput)
	}
	if err := validateDiscount(req.DiscountPercent); err != nil {
		return nil, err
	}

	validFrom, err := time.Parse(domain.DateFormat, req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid validFrom date", ErrInvalidInput)
	}
	validTo, err := time.Parse(domain.DateFormat, req.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid validTo date", ErrInvalidInput)
	}
	if validTo.Before(validFrom) {
		return nil, fmt.Errorf("%w: validTo must not be before validFrom", ErrInvalidInput)
	}

	promo := &domain.Promotion{
		SalonID:         salonID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
	}

	created, err := s.promoRepo.Create(ctx, promo)
	if err != nil {
		s.logger.Error("Create: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created promotion id=%d for salon=%d", created.ID, salonID)
	return models.FromDomainPromotion(created), nil
}

// ListBySalon возвращает акции салона
// При ActiveOnly отбираются только действующие на текущую дату
func (s *Service) ListBySalon(ctx context.Context, req *models.ListPromotionsRequest) (*models.PromotionListResponse, error) {
	if _, err := s.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("ListBySalon: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("ListBySalon: repository error for salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: ListBySalon - repository error: %v", ErrInternal, err)
	}

	var activeOn *time.Time
	if req.ActiveOnly {
		now := s.timeProvider.Now()
		activeOn = &now
	}

	promotions, err := s.promoRepo.ListBySalon(ctx, req.SalonID, activeOn)
	if err != nil {
		s.logger.Error("ListBySalon: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: ListBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySalon: fetched %d promotions for salon=%d", len(promotions), req.SalonID)
	return models.FromDomainPromotionList(promotions), nil
}

// Update частично обновляет акцию
// Доступно только владельцу салона
func (s *Service) Update(ctx context.Context, salonID, promotionID int64, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Update: updating promotion id=%d for salon=%d by user=%d", promotionID, salonID, req.UserID)

	if _, err := s.checkOwnerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	promo, err := s.getSalonPromotion(ctx, salonID, promotionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: promotion title cannot be empty", ErrInvalidInput)
	}
	if req.DiscountPercent != nil {
		if err := validateDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
	}

	upd, err := req.ToRepoUpdate()
	if err != nil {
		s.logger.Warn("Update: invalid date format for promotion id=%d: %v", promotionID, err)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	// Период действия должен оставаться согласованным после частичного обновления
	validFrom := promo.ValidFrom
	validTo := promo.ValidTo
	if upd.ValidFrom != nil {
		validFrom = *upd.ValidFrom
	}
	if upd.ValidTo != nil {
		validTo = *upd.ValidTo
	}
	if validTo.Before(validFrom) {
		return nil, fmt.Errorf("%w: validTo must not be before validFrom", ErrInvalidInput)
	}

	if err := s.promoRepo.Update(ctx, promotionID, upd); err != nil {
		if errors.Is(err, promoRepo.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("Update: repository error for promotion id=%d: %v", promotionID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.promoRepo.GetByID(ctx, promotionID)
	if err != nil {
		s.logger.Error("Update: failed to reload promotion id=%d: %v", promotionID, err)
		return nil, fmt.Errorf("%w: Update - failed to reload promotion: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated promotion id=%d", promotionID)
	return models.FromDomainPromotion(updated), nil
}

// Delete удаляет акцию салона
// Доступно только владельцу салона
func (s *Service) Delete(ctx context.Context, salonID, promotionID, userID int64) error {
	s.logger.Info("Delete: deleting promotion id=%d for salon=%d by user=%d", promotionID, salonID, userID)

	if _, err := s.checkOwnerAccess(ctx, salonID, userID); err != nil {
		return err
	}

	if _, err := s.getSalonPromotion(ctx, salonID, promotionID); err != nil {
		return err
	}

	if err := s.promoRepo.Delete(ctx, promotionID); err != nil {
		if errors.Is(err, promoRepo.ErrPromotionNotFound) {
			return ErrPromotionNotFound
		}
		s.logger.Error("Delete: repository error for promotion id=%d: %v", promotionID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted promotion id=%d", promotionID)
	return nil
}

// Вспомогательные методы

// checkOwnerAccess проверяет, что пользователь является владельцем салона
func (s *Service) checkOwnerAccess(ctx context.Context, salonID, userID int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("checkOwnerAccess: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("checkOwnerAccess: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: checkOwnerAccess - repository error: %v", ErrInternal, err)
	}

	if salon.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of salon=%d", userID, salonID)
		return nil, ErrAccessDenied
	}

	return salon, nil
}

// getSalonPromotion получает акцию и проверяет её принадлежность салону
func (s *Service) getSalonPromotion(ctx context.Context, salonID, promotionID int64) (*domain.Promotion, error) {
	promo, err := s.promoRepo.GetByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromotionNotFound) {
			s.logger.Warn("getSalonPromotion: promotion id=%d not found", promotionID)
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("%w: getSalonPromotion - repository error: %v", ErrInternal, err)
	}

	if promo.SalonID != salonID {
		s.logger.Warn("getSalonPromotion: promotion id=%d does not belong to salon=%d", promotionID, salonID)
		return nil, ErrPromotionNotFound
	}

	return promo, nil
}

func validateDiscount(percent int) error {
	if percent < domain.MinDiscountPercent || percent > domain.MaxDiscountPercent {
		return fmt.Errorf("%w: discount must be between %d and %d percent",
			ErrInvalidInput, domain.MinDiscountPercent, domain.MaxDiscountPercent)
	}
	return nil
}
