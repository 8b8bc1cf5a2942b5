package usecase

import (
	"fmt"

	"retail-leasing/internal/data/entity"

	"github.com/google/uuid"
)

// ConflictError: the proposed date range hard-overlaps an existing
// non-cancelled, non-rejected booking on the same site.
type ConflictError struct {
	SiteID    uuid.UUID
	Conflicts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("site %s is already booked for the requested dates (%d conflicting booking(s))",
		e.SiteID.String(), e.Conflicts)
}

// NotFoundError: a lookup or status change targets a missing entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidTransitionError: an attempted transition the state machine forbids,
// including any transition out of a terminal state.
type InvalidTransitionError struct {
	From entity.BookingStatus
	To   entity.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

// ValidationError: malformed input, e.g. endDate before startDate.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
