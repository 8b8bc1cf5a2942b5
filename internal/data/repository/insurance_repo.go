package repository

import (
	"context"
	"fmt"

	"retail-leasing/internal/data/entity"
	"retail-leasing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InsuranceRepository interface {
	Create(ctx context.Context, record *entity.InsuranceRecord) error
	FindLatestByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.InsuranceRecord, error)
}

type insuranceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInsuranceRepository(db database.PgxIface, log *zap.Logger) InsuranceRepository {
	return &insuranceRepository{
		db:  db,
		log: log.With(zap.String("repository", "insurance")),
	}
}

func (r *insuranceRepository) Create(ctx context.Context, record *entity.InsuranceRecord) error {
	query := `
		INSERT INTO insurance_records (id, customer_id, document_key, success, expiry_date, insured_amount,
		                               policy_number, insurance_company, extract_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.CustomerID,
		record.DocumentKey,
		record.Success,
		record.ExpiryDate,
		record.InsuredAmount,
		record.PolicyNumber,
		record.InsuranceCompany,
		record.ExtractError,
		record.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create insurance record",
			zap.Error(err),
			zap.String("customer_id", record.CustomerID.String()),
		)
		return fmt.Errorf("create insurance record for customer %s: %w", record.CustomerID.String(), err)
	}

	return nil
}

// FindLatestByCustomerID returns the newest extraction for the customer, or
// nil when no certificate was ever uploaded.
func (r *insuranceRepository) FindLatestByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.InsuranceRecord, error) {
	query := `
		SELECT id, customer_id, document_key, success, expiry_date, insured_amount,
		       policy_number, insurance_company, extract_error, created_at
		FROM insurance_records
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var record entity.InsuranceRecord
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&record.ID,
		&record.CustomerID,
		&record.DocumentKey,
		&record.Success,
		&record.ExpiryDate,
		&record.InsuredAmount,
		&record.PolicyNumber,
		&record.InsuranceCompany,
		&record.ExtractError,
		&record.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest insurance record",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find latest insurance record for customer %s: %w", customerID.String(), err)
	}

	return &record, nil
}
