package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	reviewRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/review"
	"github.com/glowpoint/salon-booking-service/internal/service/reviews/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReviewRepo struct {
	reviews   []*domain.Review
	avg       float64
	count     int
	duplicate bool
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if r.duplicate {
		return nil, reviewRepo.ErrDuplicateReview
	}
	created := *review
	created.ID = 50
	return &created, nil
}

func (r *fakeReviewRepo) ListBySalon(ctx context.Context, salonID int64) ([]*domain.Review, error) {
	return r.reviews, nil
}

func (r *fakeReviewRepo) AggregateBySalon(ctx context.Context, salonID int64) (float64, int, error) {
	return r.avg, r.count, nil
}

type fakeSalonRepo struct {
	salon       *domain.Salon
	ratingCalls []ratingCall
}

type ratingCall struct {
	salonID int64
	rating  float64
	count   int
}

func (r *fakeSalonRepo) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return r.salon, nil
}

func (r *fakeSalonRepo) UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error {
	r.ratingCalls = append(r.ratingCalls, ratingCall{salonID: id, rating: rating, count: reviewCount})
	return nil
}

func TestCreate_UpdatesSalonAggregates(t *testing.T) {
	reviews := &fakeReviewRepo{avg: 4.5, count: 2}
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: 1, Rating: 4.0}}
	tx := &fakeTxManager{}

	svc := NewService(reviews, salons, tx, noopLogger{})

	resp, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{
		CustomerID: 42,
		Rating:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.ID)

	// Создание отзыва и пересчет рейтинга идут в одной транзакции
	assert.Equal(t, 1, tx.calls)
	require.Len(t, salons.ratingCalls, 1)
	assert.Equal(t, ratingCall{salonID: 1, rating: 4.5, count: 2}, salons.ratingCalls[0])
}

func TestCreate_RatingBounds(t *testing.T) {
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: 1}}
	svc := NewService(&fakeReviewRepo{}, salons, &fakeTxManager{}, noopLogger{})

	_, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{CustomerID: 42, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), 1, &models.CreateReviewRequest{CustomerID: 42, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, salons.ratingCalls)
}

func TestCreate_DuplicateReview(t *testing.T) {
	reviews := &fakeReviewRepo{duplicate: true}
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: 1}}
	svc := NewService(reviews, salons, &fakeTxManager{}, noopLogger{})

	_, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{CustomerID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.Empty(t, salons.ratingCalls)
}

func TestListBySalon_ReturnsAggregates(t *testing.T) {
	reviews := &fakeReviewRepo{
		reviews: []*domain.Review{
			{ID: 1, SalonID: 1, CustomerID: 42, Rating: 5},
			{ID: 2, SalonID: 1, CustomerID: 43, Rating: 4},
		},
	}
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: 1, Rating: 4.5}}
	svc := NewService(reviews, salons, &fakeTxManager{}, noopLogger{})

	resp, err := svc.ListBySalon(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 4.5, resp.AverageRating)
}
