package usecase

import (
	"testing"

	"retail-leasing/internal/data/entity"
)

func TestResolvePaymentMethod(t *testing.T) {
	cases := []struct {
		mode            entity.PaymentMode
		canPayByInvoice bool
		want            entity.PaymentMethod
	}{
		{entity.PaymentModeStripe, false, entity.PaymentMethodStripe},
		{entity.PaymentModeStripe, true, entity.PaymentMethodStripe},
		{entity.PaymentModeInvoiceOnly, false, entity.PaymentMethodInvoice},
		{entity.PaymentModeInvoiceOnly, true, entity.PaymentMethodInvoice},
		{entity.PaymentModeStripeWithExceptions, false, entity.PaymentMethodStripe},
		{entity.PaymentModeStripeWithExceptions, true, entity.PaymentMethodInvoice},
	}

	for _, c := range cases {
		got := ResolvePaymentMethod(c.mode, c.canPayByInvoice)
		if got != c.want {
			t.Fatalf("mode=%s invoice=%v: expected %s, got %s", c.mode, c.canPayByInvoice, c.want, got)
		}
	}
}
