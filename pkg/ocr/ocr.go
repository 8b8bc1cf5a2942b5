package ocr

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Extraction holds the fields read from an insurance certificate document.
// Success reports whether the document could be read at all; the remaining
// fields are only meaningful when it is true.
type Extraction struct {
	Success          bool
	ExpiryDate       *time.Time
	InsuredAmount    decimal.Decimal
	PolicyNumber     *string
	InsuranceCompany *string
	Error            *string
}

type Extractor interface {
	ExtractCertificate(ctx context.Context, documentURL string) (*Extraction, error)
}
