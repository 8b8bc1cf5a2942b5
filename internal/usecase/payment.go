package usecase

import (
	"retail-leasing/internal/data/entity"
)

// ResolvePaymentMethod maps the centre's payment mode and the customer's
// invoice eligibility to an effective payment method. Plain "stripe" mode
// ignores the customer flag entirely. The result is stored on the booking at
// creation and never re-derived, so later centre policy changes do not alter
// historical bookings.
func ResolvePaymentMethod(paymentMode entity.PaymentMode, canPayByInvoice bool) entity.PaymentMethod {
	switch {
	case paymentMode == entity.PaymentModeInvoiceOnly:
		return entity.PaymentMethodInvoice
	case paymentMode == entity.PaymentModeStripeWithExceptions && canPayByInvoice:
		return entity.PaymentMethodInvoice
	default:
		return entity.PaymentMethodStripe
	}
}
