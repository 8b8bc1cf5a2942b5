package usecase

import (
	"context"
	"fmt"
	"time"

	"retail-leasing/internal/data/entity"
	"retail-leasing/internal/data/repository"
	"retail-leasing/internal/dto/request"
	"retail-leasing/internal/dto/response"
	"retail-leasing/pkg/ocr"
	"retail-leasing/pkg/storage"
	"retail-leasing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// documentURLTTL bounds how long an extracted certificate link stays valid.
const documentURLTTL = 15 * time.Minute

type InsuranceService interface {
	// RegisterCertificate runs field extraction over an already-stored
	// certificate document and persists the result. An unreadable document is
	// persisted with Success=false, not surfaced as an error; the admission
	// evaluator turns that into a manual-review reason.
	RegisterCertificate(ctx context.Context, customerID string, req *request.RegisterInsuranceRequest) (*response.InsuranceResponse, error)

	// UploadCertificate stores a certificate file and then registers it. If
	// registration fails the uploaded document is removed again.
	UploadCertificate(ctx context.Context, customerID string, localFilePath string) (*response.InsuranceResponse, error)

	GetCertificateURL(ctx context.Context, customerID string) (*response.InsuranceURLResponse, error)
}

type insuranceService struct {
	repo      *repository.Repository
	storage   storage.Service
	extractor ocr.Extractor
	log       *zap.Logger
}

func NewInsuranceService(repo *repository.Repository, store storage.Service, extractor ocr.Extractor, log *zap.Logger) InsuranceService {
	return &insuranceService{
		repo:      repo,
		storage:   store,
		extractor: extractor,
		log:       log.With(zap.String("service", "insurance")),
	}
}

func (s *insuranceService) RegisterCertificate(ctx context.Context, customerID string, req *request.RegisterInsuranceRequest) (*response.InsuranceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer ID format %s", customerID)}
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("register certificate: %w", err)
	}
	if customer == nil {
		return nil, &NotFoundError{Resource: "customer", ID: customerID}
	}

	documentURL, err := s.storage.SignedURL(ctx, req.DocumentKey, documentURLTTL)
	if err != nil {
		return nil, fmt.Errorf("register certificate: %w", err)
	}

	record := &entity.InsuranceRecord{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID:  id,
		DocumentKey: req.DocumentKey,
	}

	extraction, err := s.extractor.ExtractCertificate(ctx, documentURL)
	if err != nil {
		// Extraction failure is data, not an error: the record lands with
		// Success=false and forces manual review downstream.
		s.log.Warn("Certificate extraction failed",
			zap.Error(err),
			zap.String("customer_id", customerID),
			zap.String("document_key", req.DocumentKey),
		)
		msg := err.Error()
		record.ExtractError = &msg
	} else {
		record.Success = extraction.Success
		record.ExpiryDate = extraction.ExpiryDate
		record.InsuredAmount = extraction.InsuredAmount
		record.PolicyNumber = extraction.PolicyNumber
		record.InsuranceCompany = extraction.InsuranceCompany
		record.ExtractError = extraction.Error
	}

	// The admission evaluator compares expiry and coverage only on successful
	// extractions, so a success without both fields is demoted to a failure.
	if record.Success && (record.ExpiryDate == nil || !record.InsuredAmount.IsPositive()) {
		record.Success = false
		msg := "extraction incomplete: missing expiry date or insured amount"
		record.ExtractError = &msg
	}

	if err := s.repo.Insurance.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("Insurance certificate registered",
		zap.String("customer_id", customerID),
		zap.String("document_key", req.DocumentKey),
		zap.Bool("success", record.Success),
	)

	resp := response.InsuranceToResponse(record)
	return &resp, nil
}

func (s *insuranceService) UploadCertificate(ctx context.Context, customerID string, localFilePath string) (*response.InsuranceResponse, error) {
	documentKey, err := s.storage.Upload(ctx, localFilePath, "insurance-certificates")
	if err != nil {
		return nil, fmt.Errorf("upload certificate: %w", err)
	}

	resp, err := s.RegisterCertificate(ctx, customerID, &request.RegisterInsuranceRequest{DocumentKey: documentKey})
	if err != nil {
		if delErr := s.storage.Delete(ctx, documentKey); delErr != nil {
			s.log.Warn("Orphaned certificate document left in storage",
				zap.Error(delErr),
				zap.String("document_key", documentKey),
			)
		}
		return nil, err
	}
	return resp, nil
}

func (s *insuranceService) GetCertificateURL(ctx context.Context, customerID string) (*response.InsuranceURLResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer ID format %s", customerID)}
	}

	record, err := s.repo.Insurance.FindLatestByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get certificate URL: %w", err)
	}
	if record == nil {
		return nil, &NotFoundError{Resource: "insurance record", ID: customerID}
	}

	url, err := s.storage.SignedURL(ctx, record.DocumentKey, documentURLTTL)
	if err != nil {
		return nil, fmt.Errorf("get certificate URL: %w", err)
	}

	return &response.InsuranceURLResponse{
		DocumentKey: record.DocumentKey,
		URL:         url,
		ExpiresIn:   int(documentURLTTL.Seconds()),
	}, nil
}
