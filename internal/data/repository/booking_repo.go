package repository

import (
	"context"
	"fmt"
	"time"

	"retail-leasing/internal/data/entity"
	"retail-leasing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const bookingColumns = `id, booking_number, site_id, customer_id, category_id, start_date, end_date,
       total_amount, gst_amount, platform_fee, owner_amount, status, payment_method, paid_at,
       requires_approval, approval_reasons, additional_category_details, created_at, updated_at`

// BookingRepository deliberately exposes no status setter. The status column
// is written only by LifecycleRepository inside a lifecycle transaction.
type BookingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByBookingNumber(ctx context.Context, bookingNumber string) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	UpdateDetails(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error

	// Overlap engine queries
	FindOverlapping(ctx context.Context, siteID uuid.UUID, startDate, endDate time.Time) ([]*entity.Booking, error)
	FindOverlappingExcluding(ctx context.Context, siteID uuid.UUID, startDate, endDate time.Time, excludeID uuid.UUID) ([]*entity.Booking, error)
	FindDuplicateIntent(ctx context.Context, customerID, centreID, categoryID uuid.UUID) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.SiteID,
		&booking.CustomerID,
		&booking.CategoryID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalAmount,
		&booking.GSTAmount,
		&booking.PlatformFee,
		&booking.OwnerAmount,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.PaidAt,
		&booking.RequiresApproval,
		&booking.ApprovalReasons,
		&booking.AdditionalCategoryDetails,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_number, site_id, customer_id, category_id, start_date, end_date,
		                      total_amount, gst_amount, platform_fee, owner_amount, status, payment_method,
		                      paid_at, requires_approval, approval_reasons, additional_category_details,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := tx.Exec(ctx, query,
		booking.ID,
		booking.BookingNumber,
		booking.SiteID,
		booking.CustomerID,
		booking.CategoryID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalAmount,
		booking.GSTAmount,
		booking.PlatformFee,
		booking.OwnerAmount,
		booking.Status,
		booking.PaymentMethod,
		booking.PaidAt,
		booking.RequiresApproval,
		booking.ApprovalReasons,
		booking.AdditionalCategoryDetails,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_number", booking.BookingNumber),
			zap.String("site_id", booking.SiteID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByBookingNumber(ctx context.Context, bookingNumber string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_number = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, bookingNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by booking number",
			zap.Error(err),
			zap.String("booking_number", bookingNumber),
		)
		return nil, fmt.Errorf("find booking by booking number %s: %w", bookingNumber, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by customer ID %s: %w", customerID.String(), err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, customerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count bookings by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

// UpdateDetails updates everything except the status column, which stays
// reachable only through the lifecycle transaction.
func (r *bookingRepository) UpdateDetails(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET site_id = $2, category_id = $3, start_date = $4, end_date = $5,
		    total_amount = $6, gst_amount = $7, platform_fee = $8, owner_amount = $9,
		    payment_method = $10, additional_category_details = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		booking.ID,
		booking.SiteID,
		booking.CategoryID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalAmount,
		booking.GSTAmount,
		booking.PlatformFee,
		booking.OwnerAmount,
		booking.PaymentMethod,
		booking.AdditionalCategoryDetails,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

// FindOverlapping returns non-cancelled, non-rejected bookings on the site
// whose inclusive day range intersects [startDate, endDate].
func (r *bookingRepository) FindOverlapping(ctx context.Context, siteID uuid.UUID, startDate, endDate time.Time) ([]*entity.Booking, error) {
	return r.FindOverlappingExcluding(ctx, siteID, startDate, endDate, uuid.Nil)
}

func (r *bookingRepository) FindOverlappingExcluding(ctx context.Context, siteID uuid.UUID, startDate, endDate time.Time, excludeID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE site_id = $1
		  AND status NOT IN ('cancelled', 'rejected')
		  AND start_date <= $3
		  AND end_date >= $2
		  AND id != $4
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, siteID, startDate, endDate, excludeID)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.String("site_id", siteID.String()),
			zap.Time("start_date", startDate),
			zap.Time("end_date", endDate),
		)
		return nil, fmt.Errorf("find overlapping bookings for site %s: %w", siteID.String(), err)
	}

	return collectBookings(rows)
}

// FindDuplicateIntent returns the customer's live bookings with the same
// category anywhere in the same centre. Cancelled bookings are excluded; a
// match is a soft admission signal, not a hard block.
func (r *bookingRepository) FindDuplicateIntent(ctx context.Context, customerID, centreID, categoryID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.booking_number, b.site_id, b.customer_id, b.category_id, b.start_date, b.end_date,
		       b.total_amount, b.gst_amount, b.platform_fee, b.owner_amount, b.status, b.payment_method,
		       b.paid_at, b.requires_approval, b.approval_reasons, b.additional_category_details,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN sites s ON s.id = b.site_id
		WHERE b.customer_id = $1
		  AND s.centre_id = $2
		  AND b.category_id = $3
		  AND b.status != 'cancelled'
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID, centreID, categoryID)
	if err != nil {
		r.log.Error("Failed to find duplicate-intent bookings",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("centre_id", centreID.String()),
			zap.String("category_id", categoryID.String()),
		)
		return nil, fmt.Errorf("find duplicate-intent bookings for customer %s: %w", customerID.String(), err)
	}

	return collectBookings(rows)
}
