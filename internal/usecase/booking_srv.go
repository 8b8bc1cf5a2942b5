package usecase

import (
	"context"
	"errors"
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
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// exclusion_violation: the bookings_no_overlap constraint caught a race the
// site lock did not serialize.
const pgExclusionViolation = "23P01"

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest, actor Actor) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	GetBookingByNumber(ctx context.Context, bookingNumber string) (*response.BookingDetailResponse, error)
	GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingHistory(ctx context.Context, bookingID string) ([]response.StatusHistoryResponse, error)

	// Status transitions; every one of them goes through the lifecycle service.
	ApproveBooking(ctx context.Context, bookingID string, req *request.ApproveBookingRequest, actor Actor) error
	RejectBooking(ctx context.Context, bookingID string, req *request.RejectBookingRequest, actor Actor) error
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest, actor Actor) error
	CompleteBooking(ctx context.Context, bookingID string, actor Actor) error

	// Admin edit: date changes re-run the overlap check, status changes are
	// routed through the lifecycle service.
	AdminUpdateBooking(ctx context.Context, bookingID string, req *request.AdminUpdateBookingRequest, actor Actor) (*response.BookingResponse, error)
}

type bookingService struct {
	db        database.PgxIface
	repo      *repository.Repository
	lifecycle LifecycleService
	config    *utils.Config
	log       *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, lifecycle LifecycleService, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		db:        db,
		repo:      repo,
		lifecycle: lifecycle,
		config:    config,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, actor Actor) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Message: utils.FormatValidationErrors(errs)}
	}

	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid site ID format %s", req.SiteID)}
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer ID format %s", req.CustomerID)}
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid category ID format %s", req.CategoryID)}
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	site, err := s.repo.Site.FindByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if site == nil {
		return nil, &NotFoundError{Resource: "site", ID: req.SiteID}
	}

	centre, err := s.repo.Centre.FindByID(ctx, site.CentreID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if centre == nil {
		return nil, &NotFoundError{Resource: "centre", ID: site.CentreID.String()}
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if customer == nil {
		return nil, &NotFoundError{Resource: "customer", ID: req.CustomerID}
	}

	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if category == nil {
		return nil, &NotFoundError{Resource: "usage category", ID: req.CategoryID}
	}

	// Snapshot the admission inputs before evaluation. Approved categories are
	// captured here and not re-read mid-decision.
	approvedCategoryIDs, err := s.repo.Site.FindApprovedCategoryIDs(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	insurance, err := s.repo.Insurance.FindLatestByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	amounts := ComputeBookingAmounts(site.WeeklyRate, startDate, endDate, s.config.Fees.GSTRate, s.config.Fees.PlatformFeeRate)
	paymentMethod := ResolvePaymentMethod(centre.PaymentMode, customer.CanPayByInvoice)

	var booking *entity.Booking
	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		// Serialize the check-then-insert sequence on the site row; of two
		// concurrent conflicting requests, at most one may succeed.
		if err := s.repo.Site.LockForBooking(ctx, tx, siteID); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		conflicts, err := s.repo.Booking.FindOverlapping(ctx, siteID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if len(conflicts) > 0 {
			return &ConflictError{SiteID: siteID, Conflicts: len(conflicts)}
		}

		duplicates, err := s.repo.Booking.FindDuplicateIntent(ctx, customerID, site.CentreID, categoryID)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		decision := EvaluateAdmission(AdmissionInput{
			InstantBooking:            site.InstantBooking,
			ApprovedCategoryIDs:       approvedCategoryIDs,
			CategoryID:                categoryID,
			CategoryName:              category.Name,
			Insurance:                 insurance,
			BookingEndDate:            endDate,
			AdditionalCategoryDetails: req.AdditionalCategoryDetails,
			DuplicateIntent:           len(duplicates) > 0,
		})

		initialStatus := entity.BookingStatusConfirmed
		var approvalReasons *string
		if decision.RequiresApproval {
			initialStatus = entity.BookingStatusPending
			joined := decision.JoinedReasons()
			if joined == "" {
				joined = ReasonFallback
			}
			approvalReasons = &joined
		}

		now := time.Now()
		booking = &entity.Booking{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			BookingNumber:             utils.GenerateBookingNumber(),
			SiteID:                    siteID,
			CustomerID:                customerID,
			CategoryID:                categoryID,
			StartDate:                 startDate,
			EndDate:                   endDate,
			TotalAmount:               amounts.Total,
			GSTAmount:                 amounts.GST,
			PlatformFee:               amounts.PlatformFee,
			OwnerAmount:               amounts.OwnerAmount,
			Status:                    initialStatus,
			PaymentMethod:             paymentMethod,
			RequiresApproval:          decision.RequiresApproval,
			ApprovalReasons:           approvalReasons,
			AdditionalCategoryDetails: req.AdditionalCategoryDetails,
		}

		if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
			return err
		}

		return s.lifecycle.RecordCreation(ctx, tx, booking, actor)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return nil, &ConflictError{SiteID: siteID, Conflicts: 1}
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
		zap.String("site_id", req.SiteID),
		zap.String("status", string(booking.Status)),
		zap.Bool("requires_approval", booking.RequiresApproval),
		zap.String("payment_method", string(booking.PaymentMethod)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}

	entries, err := s.repo.StatusHistory.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	return &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		History:         response.StatusHistoryToResponses(entries),
	}, nil
}

func (s *bookingService) GetBookingByNumber(ctx context.Context, bookingNumber string) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByBookingNumber(ctx, bookingNumber)
	if err != nil {
		return nil, fmt.Errorf("get booking by number: %w", err)
	}
	if booking == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingNumber}
	}

	entries, err := s.repo.StatusHistory.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get booking by number: %w", err)
	}

	return &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		History:         response.StatusHistoryToResponses(entries),
	}, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer ID format %s", customerID)}
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count customer bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingHistory(ctx context.Context, bookingID string) ([]response.StatusHistoryResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking history: %w", err)
	}
	if booking == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}

	entries, err := s.repo.StatusHistory.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking history: %w", err)
	}

	return response.StatusHistoryToResponses(entries), nil
}

// ==================== STATUS TRANSITIONS ====================

func (s *bookingService) ApproveBooking(ctx context.Context, bookingID string, req *request.ApproveBookingRequest, actor Actor) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	var extra entity.StatusExtra
	if req != nil && req.PaidAt != nil {
		paidAt, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return &ValidationError{Message: fmt.Sprintf("invalid paid_at timestamp %s", *req.PaidAt)}
		}
		extra.PaidAt = &paidAt
	}

	_, err = s.lifecycle.ChangeStatus(ctx, id, entity.BookingStatusConfirmed, ChangeStatusParams{
		Actor: actor,
		Extra: extra,
	})
	return err
}

func (s *bookingService) RejectBooking(ctx context.Context, bookingID string, req *request.RejectBookingRequest, actor Actor) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	_, err = s.lifecycle.ChangeStatus(ctx, id, entity.BookingStatusRejected, ChangeStatusParams{
		Actor:  actor,
		Reason: &req.Reason,
	})
	return err
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest, actor Actor) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	var reason *string
	if req != nil {
		reason = req.Reason
	}

	_, err = s.lifecycle.ChangeStatus(ctx, id, entity.BookingStatusCancelled, ChangeStatusParams{
		Actor:  actor,
		Reason: reason,
	})
	return err
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string, actor Actor) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	_, err = s.lifecycle.ChangeStatus(ctx, id, entity.BookingStatusCompleted, ChangeStatusParams{Actor: actor})
	return err
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) AdminUpdateBooking(ctx context.Context, bookingID string, req *request.AdminUpdateBookingRequest, actor Actor) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid booking ID format %s", bookingID)}
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("admin update booking: %w", err)
	}
	if booking == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}

	startDate := booking.StartDate
	endDate := booking.EndDate
	datesChanged := false
	if req.StartDate != nil {
		if startDate, err = time.Parse(dateLayout, *req.StartDate); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid start date %s", *req.StartDate)}
		}
		datesChanged = true
	}
	if req.EndDate != nil {
		if endDate, err = time.Parse(dateLayout, *req.EndDate); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid end date %s", *req.EndDate)}
		}
		datesChanged = true
	}
	if endDate.Before(startDate) {
		return nil, &ValidationError{Message: "end date must not be before start date"}
	}

	if req.AdditionalCategoryDetails != nil {
		booking.AdditionalCategoryDetails = req.AdditionalCategoryDetails
	}

	if datesChanged {
		site, err := s.repo.Site.FindByID(ctx, booking.SiteID)
		if err != nil {
			return nil, fmt.Errorf("admin update booking: %w", err)
		}
		if site == nil {
			return nil, &NotFoundError{Resource: "site", ID: booking.SiteID.String()}
		}

		amounts := ComputeBookingAmounts(site.WeeklyRate, startDate, endDate, s.config.Fees.GSTRate, s.config.Fees.PlatformFeeRate)
		booking.StartDate = startDate
		booking.EndDate = endDate
		booking.TotalAmount = amounts.Total
		booking.GSTAmount = amounts.GST
		booking.PlatformFee = amounts.PlatformFee
		booking.OwnerAmount = amounts.OwnerAmount
	}
	booking.UpdatedAt = time.Now()

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if datesChanged {
			if err := s.repo.Site.LockForBooking(ctx, tx, booking.SiteID); err != nil {
				return fmt.Errorf("admin update booking: %w", err)
			}

			conflicts, err := s.repo.Booking.FindOverlappingExcluding(ctx, booking.SiteID, startDate, endDate, booking.ID)
			if err != nil {
				return fmt.Errorf("admin update booking: %w", err)
			}
			if len(conflicts) > 0 {
				return &ConflictError{SiteID: booking.SiteID, Conflicts: len(conflicts)}
			}
		}

		return s.repo.Booking.UpdateDetails(ctx, tx, booking)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return nil, &ConflictError{SiteID: booking.SiteID, Conflicts: 1}
		}
		return nil, err
	}

	// Status edits ride the lifecycle path like every other transition.
	if req.Status != nil {
		newStatus, err := entity.ParseBookingStatus(*req.Status)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}

		change, err := s.lifecycle.ChangeStatus(ctx, id, newStatus, ChangeStatusParams{
			Actor:  actor,
			Reason: req.Reason,
		})
		if err != nil {
			return nil, err
		}
		booking.Status = change.NewStatus
	}

	s.log.Info("Booking updated by admin",
		zap.String("booking_id", bookingID),
		zap.Bool("dates_changed", datesChanged),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Message: fmt.Sprintf("invalid start date %s", start)}
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Message: fmt.Sprintf("invalid end date %s", end)}
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, &ValidationError{Message: "end date must not be before start date"}
	}
	return startDate, endDate, nil
}
