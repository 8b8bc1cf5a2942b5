package entity

import (
	"testing"
	"time"
)

func TestParseBookingStatus(t *testing.T) {
	for _, raw := range []string{"pending", "confirmed", "cancelled", "rejected", "completed"} {
		status, err := ParseBookingStatus(raw)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if string(status) != raw {
			t.Fatalf("expected %q, got %q", raw, status)
		}
	}

	if _, err := ParseBookingStatus("archived"); err == nil {
		t.Fatalf("expected unknown status to fail")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]BookingStatus{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusPending},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusCompleted},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	forbidden := [][2]BookingStatus{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusCancelled, BookingStatusPending},
		{BookingStatusRejected, BookingStatusConfirmed},
		{BookingStatusCompleted, BookingStatusCancelled},
	}
	for _, pair := range forbidden {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be forbidden", pair[0], pair[1])
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusCancelled, BookingStatusRejected, BookingStatusCompleted} {
		if !status.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
	}
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed} {
		if status.IsTerminal() {
			t.Fatalf("expected %s not to be terminal", status)
		}
	}
}

func TestStatusExtraIsEmpty(t *testing.T) {
	if !(StatusExtra{}).IsEmpty() {
		t.Fatalf("zero extra should be empty")
	}
	paidAt := time.Now()
	if (StatusExtra{PaidAt: &paidAt}).IsEmpty() {
		t.Fatalf("extra with paid_at should not be empty")
	}
}
