package repository

import (
	"context"
	"fmt"

	"retail-leasing/internal/data/entity"
	"retail-leasing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogRepository is read-only: audit rows are appended exclusively by
// LifecycleRepository.InsertAuditLog inside a lifecycle transaction.
type AuditLogRepository interface {
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entity.AuditLogEntry, error)
}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func (r *auditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, entity_type, entity_id, previous_status, new_status, changed_by, reason, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, entityType, entityID)
	if err != nil {
		r.log.Error("Failed to find audit log entries",
			zap.Error(err),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
		)
		return nil, fmt.Errorf("find audit log for %s %s: %w", entityType, entityID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.AuditLogEntry
	for rows.Next() {
		var entry entity.AuditLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.EntityType,
			&entry.EntityID,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.ChangedBy,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit log row", zap.Error(err))
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
