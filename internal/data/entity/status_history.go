package entity

import (
	"github.com/google/uuid"
)

// StatusHistoryEntry is an append-only record of one booking status
// transition. PreviousStatus is nil only for the creation event; entries are
// written exclusively by the lifecycle service and never mutated or deleted.
type StatusHistoryEntry struct {
	BaseSimple
	BookingID      uuid.UUID      `db:"booking_id"`
	PreviousStatus *BookingStatus `db:"previous_status"`
	NewStatus      BookingStatus  `db:"new_status"`
	ChangedBy      *uuid.UUID     `db:"changed_by"`
	ChangedByName  *string        `db:"changed_by_name"`
	Reason         *string        `db:"reason"`
}
