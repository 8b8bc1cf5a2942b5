package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetBookingKind string

const (
	AssetBookingVacantShop      AssetBookingKind = "vacant_shop"
	AssetBookingThirdLineIncome AssetBookingKind = "third_line_income"
)

func (k AssetBookingKind) EntityType() string {
	if k == AssetBookingThirdLineIncome {
		return EntityTypeThirdLineIncomeBooking
	}
	return EntityTypeVacantShopBooking
}

// AssetBooking covers vacant-shop and third-line-income lettings. It has its
// own status field but shares the booking audit requirement via AuditLogEntry.
type AssetBooking struct {
	BaseNoDelete
	Kind       AssetBookingKind `db:"kind"`
	CentreID   uuid.UUID        `db:"centre_id"`
	CustomerID uuid.UUID        `db:"customer_id"`
	StartDate  time.Time        `db:"start_date"`
	EndDate    time.Time        `db:"end_date"`
	Amount     decimal.Decimal  `db:"amount"`
	Status     BookingStatus    `db:"status"`
}
