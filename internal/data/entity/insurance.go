package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsuranceRecord holds the extraction result for a customer's public
// liability certificate. Success=false means the document could not be read;
// the remaining fields are only meaningful when Success is true.
type InsuranceRecord struct {
	BaseSimple
	CustomerID       uuid.UUID       `db:"customer_id"`
	DocumentKey      string          `db:"document_key"`
	Success          bool            `db:"success"`
	ExpiryDate       *time.Time      `db:"expiry_date"`
	InsuredAmount    decimal.Decimal `db:"insured_amount"`
	PolicyNumber     *string         `db:"policy_number"`
	InsuranceCompany *string         `db:"insurance_company"`
	ExtractError     *string         `db:"extract_error"`
}
