package repository

import (
	"context"
	"fmt"

	"retail-leasing/internal/data/entity"
	"retail-leasing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UsageCategory, error)
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UsageCategory, error) {
	query := `SELECT id, name, created_at FROM usage_categories WHERE id = $1`

	var category entity.UsageCategory
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find usage category by ID",
			zap.Error(err),
			zap.String("category_id", id.String()),
		)
		return nil, fmt.Errorf("find usage category by ID %s: %w", id.String(), err)
	}

	return &category, nil
}
