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

const assetBookingColumns = `id, kind, centre_id, customer_id, start_date, end_date, amount, status, created_at, updated_at`

// AssetBookingRepository, like BookingRepository, exposes no status setter.
type AssetBookingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, assetBooking *entity.AssetBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AssetBooking, error)
}

type assetBookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAssetBookingRepository(db database.PgxIface, log *zap.Logger) AssetBookingRepository {
	return &assetBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "asset_booking")),
	}
}

func scanAssetBooking(row pgx.Row) (*entity.AssetBooking, error) {
	var assetBooking entity.AssetBooking
	err := row.Scan(
		&assetBooking.ID,
		&assetBooking.Kind,
		&assetBooking.CentreID,
		&assetBooking.CustomerID,
		&assetBooking.StartDate,
		&assetBooking.EndDate,
		&assetBooking.Amount,
		&assetBooking.Status,
		&assetBooking.CreatedAt,
		&assetBooking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &assetBooking, nil
}

func (r *assetBookingRepository) Create(ctx context.Context, tx pgx.Tx, assetBooking *entity.AssetBooking) error {
	query := `
		INSERT INTO asset_bookings (id, kind, centre_id, customer_id, start_date, end_date, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		assetBooking.ID,
		assetBooking.Kind,
		assetBooking.CentreID,
		assetBooking.CustomerID,
		assetBooking.StartDate,
		assetBooking.EndDate,
		assetBooking.Amount,
		assetBooking.Status,
		assetBooking.CreatedAt,
		assetBooking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create asset booking",
			zap.Error(err),
			zap.String("kind", string(assetBooking.Kind)),
			zap.String("centre_id", assetBooking.CentreID.String()),
		)
		return fmt.Errorf("create %s booking: %w", string(assetBooking.Kind), err)
	}

	return nil
}

func (r *assetBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AssetBooking, error) {
	query := `SELECT ` + assetBookingColumns + ` FROM asset_bookings WHERE id = $1`

	assetBooking, err := scanAssetBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find asset booking by ID",
			zap.Error(err),
			zap.String("asset_booking_id", id.String()),
		)
		return nil, fmt.Errorf("find asset booking by ID %s: %w", id.String(), err)
	}

	return assetBooking, nil
}
