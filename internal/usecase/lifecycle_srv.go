package usecase

import (
	"context"
	"fmt"
	"time"

	"retail-leasing/internal/data/entity"
	"retail-leasing/internal/data/repository"
	"retail-leasing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Actor identifies who triggered a status change, for audit attribution.
// System-initiated changes carry a nil ID.
type Actor struct {
	ID   *uuid.UUID
	Name *string
}

type StatusChange struct {
	PreviousStatus *entity.BookingStatus
	NewStatus      entity.BookingStatus
}

type ChangeStatusParams struct {
	Actor  Actor
	Reason *string
	Extra  entity.StatusExtra
}

// LifecycleService is the only authorized path for mutating a booking's
// status. Each operation runs in a single transaction so the status write and
// the history append commit or roll back together.
type LifecycleService interface {
	ChangeStatus(ctx context.Context, bookingID uuid.UUID, newStatus entity.BookingStatus, params ChangeStatusParams) (*StatusChange, error)

	// RecordCreation seeds the audit trail for a just-created booking within
	// the caller's creation transaction. It is the only legitimate producer of
	// a history entry with a nil previous status.
	RecordCreation(ctx context.Context, tx pgx.Tx, booking *entity.Booking, actor Actor) error

	ChangeAssetStatus(ctx context.Context, assetBookingID uuid.UUID, newStatus entity.BookingStatus, params ChangeStatusParams) (*StatusChange, error)

	// LogAssetStatusChange appends an audit entry for a non-booking entity
	// within the caller's transaction.
	LogAssetStatusChange(ctx context.Context, tx pgx.Tx, entityType string, entityID uuid.UUID, previousStatus *string, newStatus string, changedBy *uuid.UUID, reason *string) error
}

type lifecycleService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewLifecycleService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "lifecycle")),
	}
}

func (s *lifecycleService) ChangeStatus(ctx context.Context, bookingID uuid.UUID, newStatus entity.BookingStatus, params ChangeStatusParams) (*StatusChange, error) {
	var change *StatusChange

	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		booking, err := s.repo.Lifecycle.GetBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return fmt.Errorf("change booking status: %w", err)
		}
		if booking == nil {
			return &NotFoundError{Resource: "booking", ID: bookingID.String()}
		}

		previousStatus := booking.Status

		// Speculative retries with the same target and no extra fields are a
		// no-op: no row update, no history entry.
		if previousStatus == newStatus && params.Extra.IsEmpty() {
			change = &StatusChange{PreviousStatus: &previousStatus, NewStatus: newStatus}
			return nil
		}

		if previousStatus.IsTerminal() {
			return &InvalidTransitionError{From: previousStatus, To: newStatus}
		}
		if previousStatus != newStatus && !entity.CanTransition(previousStatus, newStatus) {
			return &InvalidTransitionError{From: previousStatus, To: newStatus}
		}

		if err := s.repo.Lifecycle.SetBookingStatus(ctx, tx, bookingID, newStatus, params.Extra); err != nil {
			return err
		}

		hist := &entity.StatusHistoryEntry{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			BookingID:      bookingID,
			PreviousStatus: &previousStatus,
			NewStatus:      newStatus,
			ChangedBy:      params.Actor.ID,
			ChangedByName:  params.Actor.Name,
			Reason:         params.Reason,
		}
		if err := s.repo.Lifecycle.InsertHistory(ctx, tx, hist); err != nil {
			return err
		}

		change = &StatusChange{PreviousStatus: &previousStatus, NewStatus: newStatus}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if change.PreviousStatus != nil && *change.PreviousStatus != change.NewStatus {
		s.log.Info("Booking status changed",
			zap.String("booking_id", bookingID.String()),
			zap.String("previous_status", string(*change.PreviousStatus)),
			zap.String("new_status", string(change.NewStatus)),
		)
	}

	return change, nil
}

func (s *lifecycleService) RecordCreation(ctx context.Context, tx pgx.Tx, booking *entity.Booking, actor Actor) error {
	var reason *string
	if booking.ApprovalReasons != nil && *booking.ApprovalReasons != "" {
		reason = booking.ApprovalReasons
	}

	hist := &entity.StatusHistoryEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:      booking.ID,
		PreviousStatus: nil,
		NewStatus:      booking.Status,
		ChangedBy:      actor.ID,
		ChangedByName:  actor.Name,
		Reason:         reason,
	}

	if err := s.repo.Lifecycle.InsertHistory(ctx, tx, hist); err != nil {
		return fmt.Errorf("record booking creation: %w", err)
	}

	return nil
}

func (s *lifecycleService) ChangeAssetStatus(ctx context.Context, assetBookingID uuid.UUID, newStatus entity.BookingStatus, params ChangeStatusParams) (*StatusChange, error) {
	var change *StatusChange

	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		assetBooking, err := s.repo.Lifecycle.GetAssetBookingForUpdate(ctx, tx, assetBookingID)
		if err != nil {
			return fmt.Errorf("change asset booking status: %w", err)
		}
		if assetBooking == nil {
			return &NotFoundError{Resource: "asset booking", ID: assetBookingID.String()}
		}

		previousStatus := assetBooking.Status

		if previousStatus == newStatus {
			change = &StatusChange{PreviousStatus: &previousStatus, NewStatus: newStatus}
			return nil
		}

		if previousStatus.IsTerminal() {
			return &InvalidTransitionError{From: previousStatus, To: newStatus}
		}
		if !entity.CanTransition(previousStatus, newStatus) {
			return &InvalidTransitionError{From: previousStatus, To: newStatus}
		}

		if err := s.repo.Lifecycle.SetAssetBookingStatus(ctx, tx, assetBookingID, newStatus); err != nil {
			return err
		}

		prev := string(previousStatus)
		if err := s.LogAssetStatusChange(ctx, tx, assetBooking.Kind.EntityType(), assetBookingID, &prev, string(newStatus), params.Actor.ID, params.Reason); err != nil {
			return err
		}

		change = &StatusChange{PreviousStatus: &previousStatus, NewStatus: newStatus}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if change.PreviousStatus != nil && *change.PreviousStatus != change.NewStatus {
		s.log.Info("Asset booking status changed",
			zap.String("asset_booking_id", assetBookingID.String()),
			zap.String("previous_status", string(*change.PreviousStatus)),
			zap.String("new_status", string(change.NewStatus)),
		)
	}

	return change, nil
}

func (s *lifecycleService) LogAssetStatusChange(ctx context.Context, tx pgx.Tx, entityType string, entityID uuid.UUID, previousStatus *string, newStatus string, changedBy *uuid.UUID, reason *string) error {
	entry := &entity.AuditLogEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		EntityType:     entityType,
		EntityID:       entityID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		ChangedBy:      changedBy,
		Reason:         reason,
	}

	if err := s.repo.Lifecycle.InsertAuditLog(ctx, tx, entry); err != nil {
		return fmt.Errorf("log %s status change: %w", entityType, err)
	}

	return nil
}
