package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Site is a leasable space inside a Centre. InstantBooking=false means every
// booking on this site goes to manual review regardless of other factors.
type Site struct {
	BaseNoDelete
	CentreID       uuid.UUID       `db:"centre_id"`
	Name           string          `db:"name"`
	InstantBooking bool            `db:"instant_booking"`
	WeeklyRate     decimal.Decimal `db:"weekly_rate"`
}
