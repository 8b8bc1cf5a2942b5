package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodStripe  PaymentMethod = "stripe"
	PaymentMethodInvoice PaymentMethod = "invoice"
)

// Booking reserves one site for a closed calendar-day interval
// [StartDate, EndDate]. Dates carry no time-of-day component.
type Booking struct {
	BaseNoDelete
	BookingNumber             string          `db:"booking_number"`
	SiteID                    uuid.UUID       `db:"site_id"`
	CustomerID                uuid.UUID       `db:"customer_id"`
	CategoryID                uuid.UUID       `db:"category_id"`
	StartDate                 time.Time       `db:"start_date"`
	EndDate                   time.Time       `db:"end_date"`
	TotalAmount               decimal.Decimal `db:"total_amount"`
	GSTAmount                 decimal.Decimal `db:"gst_amount"`
	PlatformFee               decimal.Decimal `db:"platform_fee"`
	OwnerAmount               decimal.Decimal `db:"owner_amount"`
	Status                    BookingStatus   `db:"status"`
	PaymentMethod             PaymentMethod   `db:"payment_method"`
	PaidAt                    *time.Time      `db:"paid_at"`
	RequiresApproval          bool            `db:"requires_approval"`
	ApprovalReasons           *string         `db:"approval_reasons"`
	AdditionalCategoryDetails *string         `db:"additional_category_details"`
}
