package entity

type PaymentMode string

const (
	PaymentModeStripe               PaymentMode = "stripe"
	PaymentModeInvoiceOnly          PaymentMode = "invoice_only"
	PaymentModeStripeWithExceptions PaymentMode = "stripe_with_exceptions"
)

type Centre struct {
	BaseNoDelete
	Name        string      `db:"name"`
	PaymentMode PaymentMode `db:"payment_mode"`
}
