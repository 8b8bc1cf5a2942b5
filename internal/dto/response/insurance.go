package response

import (
	"time"

	"retail-leasing/internal/data/entity"
)

type InsuranceResponse struct {
	ID               string     `json:"id"`
	CustomerID       string     `json:"customer_id"`
	DocumentKey      string     `json:"document_key"`
	Success          bool       `json:"success"`
	ExpiryDate       *string    `json:"expiry_date,omitempty"`
	InsuredAmount    string     `json:"insured_amount"`
	PolicyNumber     *string    `json:"policy_number,omitempty"`
	InsuranceCompany *string    `json:"insurance_company,omitempty"`
	Error            *string    `json:"error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type InsuranceURLResponse struct {
	DocumentKey string `json:"document_key"`
	URL         string `json:"url"`
	ExpiresIn   int    `json:"expires_in"`
}

func InsuranceToResponse(record *entity.InsuranceRecord) InsuranceResponse {
	var expiryDate *string
	if record.ExpiryDate != nil {
		s := record.ExpiryDate.Format("2006-01-02")
		expiryDate = &s
	}

	return InsuranceResponse{
		ID:               record.ID.String(),
		CustomerID:       record.CustomerID.String(),
		DocumentKey:      record.DocumentKey,
		Success:          record.Success,
		ExpiryDate:       expiryDate,
		InsuredAmount:    record.InsuredAmount.StringFixed(2),
		PolicyNumber:     record.PolicyNumber,
		InsuranceCompany: record.InsuranceCompany,
		Error:            record.ExtractError,
		CreatedAt:        record.CreatedAt,
	}
}
