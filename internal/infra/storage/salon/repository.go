package salon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/dbmetrics"
	"github.com/glowpoint/salon-booking-service/pkg/psqlbuilder"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

var salonColumns = []string{
	"id",
	"owner_id",
	"name",
	"city",
	"address",
	"phone",
	"opening_time",
	"closing_time",
	"rating",
	"review_count",
	"created_at",
	"updated_at",
}

// SalonUpdate частичное обновление салона (nil = поле не меняется)
type SalonUpdate struct {
	Name        *string
	City        *string
	Address     *string
	Phone       *string
	OpeningTime *types.TimeString
	ClosingTime *types.TimeString
}

// Repository репозиторий для работы с салонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый салон
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salons").
		Columns("owner_id", "name", "city", "address", "phone", "opening_time", "closing_time").
		Values(salon.OwnerID, salon.Name, salon.City, salon.Address, salon.Phone, salon.OpeningTime, salon.ClosingTime).
		Suffix("RETURNING id, rating, review_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&salon.ID,
		&salon.Rating,
		&salon.ReviewCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return salon, nil
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	salon, err := r.scanSalon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan salon: %v", ErrScanRow, err)
	}

	return salon, nil
}

// List получает список салонов с фильтрацией по городу и минимальному рейтингу
// Сортировка: сначала салоны с наибольшим рейтингом
func (r *Repository) List(ctx context.Context, filter domain.SalonsFilter) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(salonColumns...).
		From("salons").
		OrderBy("rating DESC, id ASC")

	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city": *filter.City})
	}
	if filter.MinRating != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"rating": *filter.MinRating})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	salons := make([]*domain.Salon, 0)
	for rows.Next() {
		salon, err := r.scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		salons = append(salons, salon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return salons, nil
}

// Update частично обновляет поля салона
func (r *Repository) Update(ctx context.Context, id int64, upd SalonUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("salons").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.City != nil {
		updateBuilder = updateBuilder.Set("city", *upd.City)
	}
	if upd.Address != nil {
		updateBuilder = updateBuilder.Set("address", *upd.Address)
	}
	if upd.Phone != nil {
		updateBuilder = updateBuilder.Set("phone", *upd.Phone)
	}
	if upd.OpeningTime != nil {
		updateBuilder = updateBuilder.Set("opening_time", *upd.OpeningTime)
	}
	if upd.ClosingTime != nil {
		updateBuilder = updateBuilder.Set("closing_time", *upd.ClosingTime)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// UpdateRating перезаписывает агрегированный рейтинг салона
// Вызывается после добавления отзыва
func (r *Repository) UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("rating", rating).
		Set("review_count", reviewCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRating - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateRating")
}

// Delete удаляет салон
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSalon(row rowScanner) (*domain.Salon, error) {
	var salon domain.Salon
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&salon.ID,
		&salon.OwnerID,
		&salon.Name,
		&salon.City,
		&salon.Address,
		&salon.Phone,
		&salon.OpeningTime,
		&salon.ClosingTime,
		&salon.Rating,
		&salon.ReviewCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return &salon, nil
}
