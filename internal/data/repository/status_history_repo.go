package repository

import (
	"context"
	"fmt"

	"retail-leasing/internal/data/entity"
	"retail-leasing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusHistoryRepository is read-only: history rows are appended exclusively
// by LifecycleRepository.InsertHistory inside a lifecycle transaction.
type StatusHistoryRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error)
}

type statusHistoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatusHistoryRepository(db database.PgxIface, log *zap.Logger) StatusHistoryRepository {
	return &statusHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "status_history")),
	}
}

func (r *statusHistoryRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error) {
	query := `
		SELECT id, booking_id, previous_status, new_status, changed_by, changed_by_name, reason, created_at
		FROM status_history
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find status history by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find status history for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.StatusHistoryEntry
	for rows.Next() {
		var entry entity.StatusHistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.ChangedBy,
			&entry.ChangedByName,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan status history row", zap.Error(err))
			return nil, fmt.Errorf("scan status history row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
