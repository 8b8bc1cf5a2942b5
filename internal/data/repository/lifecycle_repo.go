package repository

import (
	"context"
	"fmt"

	"retail-leasing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LifecycleRepository is the only gateway to the status columns of bookings
// and asset bookings. Every method takes the caller's transaction so the row
// update and the paired history/audit append commit or roll back together.
// Nothing else in the repository layer can write a status.
type LifecycleRepository interface {
	GetBookingForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Booking, error)
	SetBookingStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.BookingStatus, extra entity.StatusExtra) error
	InsertHistory(ctx context.Context, tx pgx.Tx, hist *entity.StatusHistoryEntry) error

	GetAssetBookingForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.AssetBooking, error)
	SetAssetBookingStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.BookingStatus) error
	InsertAuditLog(ctx context.Context, tx pgx.Tx, log *entity.AuditLogEntry) error
}

type lifecycleRepository struct {
	log *zap.Logger
}

func NewLifecycleRepository(log *zap.Logger) LifecycleRepository {
	return &lifecycleRepository{
		log: log.With(zap.String("repository", "lifecycle")),
	}
}

func (r *lifecycleRepository) GetBookingForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	booking, err := scanBooking(tx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking for update",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *lifecycleRepository) SetBookingStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.BookingStatus, extra entity.StatusExtra) error {
	query := `
		UPDATE bookings
		SET status = $2, paid_at = COALESCE($3, paid_at), updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, status, extra.PaidAt)
	if err != nil {
		r.log.Error("Failed to set booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("set booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *lifecycleRepository) InsertHistory(ctx context.Context, tx pgx.Tx, hist *entity.StatusHistoryEntry) error {
	query := `
		INSERT INTO status_history (id, booking_id, previous_status, new_status, changed_by, changed_by_name, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		hist.ID,
		hist.BookingID,
		hist.PreviousStatus,
		hist.NewStatus,
		hist.ChangedBy,
		hist.ChangedByName,
		hist.Reason,
		hist.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to insert status history entry",
			zap.Error(err),
			zap.String("booking_id", hist.BookingID.String()),
			zap.String("new_status", string(hist.NewStatus)),
		)
		return fmt.Errorf("insert status history for booking %s: %w", hist.BookingID.String(), err)
	}

	return nil
}

func (r *lifecycleRepository) GetAssetBookingForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.AssetBooking, error) {
	query := `SELECT ` + assetBookingColumns + ` FROM asset_bookings WHERE id = $1 FOR UPDATE`

	assetBooking, err := scanAssetBooking(tx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock asset booking for update",
			zap.Error(err),
			zap.String("asset_booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock asset booking %s: %w", id.String(), err)
	}

	return assetBooking, nil
}

func (r *lifecycleRepository) SetAssetBookingStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE asset_bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := tx.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to set asset booking status",
			zap.Error(err),
			zap.String("asset_booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("set asset booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset booking %s not found", id.String())
	}

	return nil
}

func (r *lifecycleRepository) InsertAuditLog(ctx context.Context, tx pgx.Tx, entry *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (id, entity_type, entity_id, previous_status, new_status, changed_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		entry.ID,
		entry.EntityType,
		entry.EntityID,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.ChangedBy,
		entry.Reason,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to insert audit log entry",
			zap.Error(err),
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID.String()),
		)
		return fmt.Errorf("insert audit log for %s %s: %w", entry.EntityType, entry.EntityID.String(), err)
	}

	return nil
}
