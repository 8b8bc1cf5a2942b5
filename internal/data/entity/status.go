package entity

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusRejected, BookingStatusCompleted:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// cancelled, rejected and completed are terminal: no transition leads out of them.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending:   {BookingStatusConfirmed: true, BookingStatusRejected: true, BookingStatusCancelled: true},
	BookingStatusConfirmed: {BookingStatusPending: true, BookingStatusCancelled: true, BookingStatusCompleted: true},
	BookingStatusCancelled: {},
	BookingStatusRejected:  {},
	BookingStatusCompleted: {},
}

func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func CanTransition(from, to BookingStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// StatusExtra carries the optional columns a status change may set alongside
// the status itself. A same-status change with an empty extra is a no-op.
type StatusExtra struct {
	PaidAt *time.Time
}

func (e StatusExtra) IsEmpty() bool {
	return e.PaidAt == nil
}
