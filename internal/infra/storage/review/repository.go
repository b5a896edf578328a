package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/dbmetrics"
	"github.com/glowpoint/salon-booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения unique constraint
const uniqueViolation = "23505"

// Repository репозиторий для работы с отзывами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отзыв
// Повторный отзыв того же клиента на тот же салон отклоняется
// ограничением UNIQUE(salon_id, customer_id)
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("salon_id", "customer_id", "rating", "comment").
		Values(review.SalonID, review.CustomerID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time

	return review, nil
}

// ListBySalon получает отзывы салона, сначала свежие
func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "customer_id", "rating", "comment", "created_at").
		From("reviews").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.SalonID,
			&review.CustomerID,
			&review.Rating,
			&review.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %v", ErrScanRow, err)
		}

		review.CreatedAt = createdAt.Time
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// AggregateBySalon возвращает средний рейтинг и количество отзывов салона
// Для салона без отзывов возвращает (0, 0)
func (r *Repository) AggregateBySalon(ctx context.Context, salonID int64) (float64, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: AggregateBySalon - build select query: %v", ErrBuildQuery, err)
	}

	var avg float64
	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("%w: AggregateBySalon - scan: %v", ErrScanRow, err)
	}

	return avg, count, nil
}
