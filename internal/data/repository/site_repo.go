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

type SiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error)
	FindApprovedCategoryIDs(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error)
	LockForBooking(ctx context.Context, tx pgx.Tx, siteID uuid.UUID) error
}

type siteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSiteRepository(db database.PgxIface, log *zap.Logger) SiteRepository {
	return &siteRepository{
		db:  db,
		log: log.With(zap.String("repository", "site")),
	}
}

func (r *siteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	query := `
		SELECT id, centre_id, name, instant_booking, weekly_rate, created_at, updated_at
		FROM sites
		WHERE id = $1
	`

	var site entity.Site
	err := r.db.QueryRow(ctx, query, id).Scan(
		&site.ID,
		&site.CentreID,
		&site.Name,
		&site.InstantBooking,
		&site.WeeklyRate,
		&site.CreatedAt,
		&site.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find site by ID",
			zap.Error(err),
			zap.String("site_id", id.String()),
		)
		return nil, fmt.Errorf("find site by ID %s: %w", id.String(), err)
	}

	return &site, nil
}

// FindApprovedCategoryIDs returns the site's approved usage categories. An
// empty result means the site is unrestricted: every category is implicitly
// approved. That default-allow is deliberate business policy.
func (r *siteRepository) FindApprovedCategoryIDs(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT category_id FROM site_approved_categories WHERE site_id = $1`

	rows, err := r.db.Query(ctx, query, siteID)
	if err != nil {
		r.log.Error("Failed to find approved categories for site",
			zap.Error(err),
			zap.String("site_id", siteID.String()),
		)
		return nil, fmt.Errorf("find approved categories for site %s: %w", siteID.String(), err)
	}
	defer rows.Close()

	var categoryIDs []uuid.UUID
	for rows.Next() {
		var categoryID uuid.UUID
		if err := rows.Scan(&categoryID); err != nil {
			r.log.Error("Failed to scan approved category row", zap.Error(err))
			return nil, fmt.Errorf("scan approved category row: %w", err)
		}
		categoryIDs = append(categoryIDs, categoryID)
	}

	return categoryIDs, rows.Err()
}

// LockForBooking takes the site's row lock so that a concurrent
// check-then-insert on the same site serializes behind this transaction.
func (r *siteRepository) LockForBooking(ctx context.Context, tx pgx.Tx, siteID uuid.UUID) error {
	query := `SELECT id FROM sites WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, siteID).Scan(&id)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("site %s not found", siteID.String())
	}
	if err != nil {
		r.log.Error("Failed to lock site for booking",
			zap.Error(err),
			zap.String("site_id", siteID.String()),
		)
		return fmt.Errorf("lock site %s: %w", siteID.String(), err)
	}

	return nil
}
