package usecase

import (
	"context"
	"fmt"
	"time"

	"retail-leasing/internal/data/entity"
	"retail-leasing/internal/data/repository"
	"retail-leasing/internal/dto/request"
	"retail-leasing/internal/dto/response"
	"retail-leasing/pkg/database"
	"retail-leasing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AssetBookingService covers vacant-shop and third-line-income bookings.
// They carry their own status but share the booking audit requirement.
type AssetBookingService interface {
	CreateAssetBooking(ctx context.Context, req *request.CreateAssetBookingRequest, actor Actor) (*response.AssetBookingResponse, error)
	GetAssetBooking(ctx context.Context, assetBookingID string) (*response.AssetBookingDetailResponse, error)
	ChangeAssetStatus(ctx context.Context, assetBookingID string, req *request.ChangeAssetStatusRequest, actor Actor) error
}

type assetBookingService struct {
	db        database.PgxIface
	repo      *repository.Repository
	lifecycle LifecycleService
	log       *zap.Logger
}

func NewAssetBookingService(db database.PgxIface, repo *repository.Repository, lifecycle LifecycleService, log *zap.Logger) AssetBookingService {
	return &assetBookingService{
		db:        db,
		repo:      repo,
		lifecycle: lifecycle,
		log:       log.With(zap.String("service", "asset_booking")),
	}
}

func (s *assetBookingService) CreateAssetBooking(ctx context.Context, req *request.CreateAssetBookingRequest, actor Actor) (*response.AssetBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create asset booking validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Message: utils.FormatValidationErrors(errs)}
	}

	centreID, err := uuid.Parse(req.CentreID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid centre ID format %s", req.CentreID)}
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer ID format %s", req.CustomerID)}
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid amount %s", req.Amount)}
	}

	centre, err := s.repo.Centre.FindByID(ctx, centreID)
	if err != nil {
		return nil, fmt.Errorf("create asset booking: %w", err)
	}
	if centre == nil {
		return nil, &NotFoundError{Resource: "centre", ID: req.CentreID}
	}

	now := time.Now()
	assetBooking := &entity.AssetBooking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Kind:       entity.AssetBookingKind(req.Kind),
		CentreID:   centreID,
		CustomerID: customerID,
		StartDate:  startDate,
		EndDate:    endDate,
		Amount:     amount,
		Status:     entity.BookingStatusPending,
	}

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.AssetBooking.Create(ctx, tx, assetBooking); err != nil {
			return err
		}

		// Seed the audit trail: nil previous status marks creation.
		return s.lifecycle.LogAssetStatusChange(ctx, tx, assetBooking.Kind.EntityType(), assetBooking.ID,
			nil, string(assetBooking.Status), actor.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Asset booking created",
		zap.String("asset_booking_id", assetBooking.ID.String()),
		zap.String("kind", string(assetBooking.Kind)),
		zap.String("centre_id", req.CentreID),
	)

	resp := response.AssetBookingToResponse(assetBooking)
	return &resp, nil
}

func (s *assetBookingService) GetAssetBooking(ctx context.Context, assetBookingID string) (*response.AssetBookingDetailResponse, error) {
	id, err := uuid.Parse(assetBookingID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid asset booking ID format %s", assetBookingID)}
	}

	assetBooking, err := s.repo.AssetBooking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get asset booking: %w", err)
	}
	if assetBooking == nil {
		return nil, &NotFoundError{Resource: "asset booking", ID: assetBookingID}
	}

	entries, err := s.repo.AuditLog.FindByEntity(ctx, assetBooking.Kind.EntityType(), id)
	if err != nil {
		return nil, fmt.Errorf("get asset booking: %w", err)
	}

	return &response.AssetBookingDetailResponse{
		AssetBookingResponse: response.AssetBookingToResponse(assetBooking),
		AuditTrail:           response.AuditLogToResponses(entries),
	}, nil
}

func (s *assetBookingService) ChangeAssetStatus(ctx context.Context, assetBookingID string, req *request.ChangeAssetStatusRequest, actor Actor) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(assetBookingID)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid asset booking ID format %s", assetBookingID)}
	}

	newStatus, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	_, err = s.lifecycle.ChangeAssetStatus(ctx, id, newStatus, ChangeStatusParams{
		Actor:  actor,
		Reason: req.Reason,
	})
	return err
}
