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

type CentreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Centre, error)
}

type centreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCentreRepository(db database.PgxIface, log *zap.Logger) CentreRepository {
	return &centreRepository{
		db:  db,
		log: log.With(zap.String("repository", "centre")),
	}
}

func (r *centreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Centre, error) {
	query := `
		SELECT id, name, payment_mode, created_at, updated_at
		FROM centres
		WHERE id = $1
	`

	var centre entity.Centre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&centre.ID,
		&centre.Name,
		&centre.PaymentMode,
		&centre.CreatedAt,
		&centre.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find centre by ID",
			zap.Error(err),
			zap.String("centre_id", id.String()),
		)
		return nil, fmt.Errorf("find centre by ID %s: %w", id.String(), err)
	}

	return &centre, nil
}
