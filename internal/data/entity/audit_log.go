package entity

import (
	"github.com/google/uuid"
)

// Audited entity types for non-booking records that carry their own status.
const (
	EntityTypeVacantShopBooking      = "vacant_shop_booking"
	EntityTypeThirdLineIncomeBooking = "third_line_income_booking"
)

// AuditLogEntry generalizes StatusHistoryEntry for entities other than
// Booking, keyed by (EntityType, EntityID).
type AuditLogEntry struct {
	BaseSimple
	EntityType     string     `db:"entity_type"`
	EntityID       uuid.UUID  `db:"entity_id"`
	PreviousStatus *string    `db:"previous_status"`
	NewStatus      string     `db:"new_status"`
	ChangedBy      *uuid.UUID `db:"changed_by"`
	Reason         *string    `db:"reason"`
}
