package promotion

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glowpoint/salon-booking-service/internal/domain"
	"github.com/glowpoint/salon-booking-service/pkg/dbmetrics"
	"github.com/glowpoint/salon-booking-service/pkg/psqlbuilder"
)

var promotionColumns = []string{
	"id",
	"salon_id",
	"title",
	"description",
	"discount_percent",
	"valid_from",
	"valid_to",
	"created_at",
	"updated_at",
}

// PromotionUpdate частичное обновление акции (nil = поле не меняется)
type PromotionUpdate struct {
	Title           *string
	Description     *string
	DiscountPercent *int
	ValidFrom       *time.Time
	ValidTo         *time.Time
}

// Repository репозиторий для работы с акциями салонов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория акций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую акцию
func (r *Repository) Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promotions").
		Columns("salon_id", "title", "description", "discount_percent", "valid_from", "valid_to").
		Values(promo.SalonID, promo.Title, promo.Description, promo.DiscountPercent, promo.ValidFrom, promo.ValidTo).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&promo.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	promo.CreatedAt = createdAt.Time
	promo.UpdatedAt = updatedAt.Time

	return promo, nil
}

// GetByID получает акцию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	promo, err := r.scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan promotion: %v", ErrScanRow, err)
	}

	return promo, nil
}

// ListBySalon получает акции салона
// Если activeOn задан, возвращаются только акции, действующие на эту дату
func (r *Repository) ListBySalon(ctx context.Context, salonID int64, activeOn *time.Time) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("valid_from DESC")

	if activeOn != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.LtOrEq{"valid_from": *activeOn}).
			Where(squirrel.GtOrEq{"valid_to": *activeOn})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promotions := make([]*domain.Promotion, 0)
	for rows.Next() {
		promo, err := r.scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %v", ErrScanRow, err)
		}
		promotions = append(promotions, promo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return promotions, nil
}

// Update частично обновляет поля акции
func (r *Repository) Update(ctx context.Context, id int64, upd PromotionUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("promotions").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Title != nil {
		updateBuilder = updateBuilder.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
	}
	if upd.DiscountPercent != nil {
		updateBuilder = updateBuilder.Set("discount_percent", *upd.DiscountPercent)
	}
	if upd.ValidFrom != nil {
		updateBuilder = updateBuilder.Set("valid_from", *upd.ValidFrom)
	}
	if upd.ValidTo != nil {
		updateBuilder = updateBuilder.Set("valid_to", *upd.ValidTo)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// Delete удаляет акцию
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("promotions").
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
		return ErrPromotionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var promo domain.Promotion
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&promo.ID,
		&promo.SalonID,
		&promo.Title,
		&promo.Description,
		&promo.DiscountPercent,
		&promo.ValidFrom,
		&promo.ValidTo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	promo.CreatedAt = createdAt.Time
	promo.UpdatedAt = updatedAt.Time

	return &promo, nil
}
