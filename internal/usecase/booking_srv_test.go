package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"retail-leasing/internal/data/entity"
	"retail-leasing/internal/data/repository"
	"retail-leasing/internal/dto/request"
	"retail-leasing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeBookingRepo keeps bookings in memory. FindOverlappingExcluding applies
// the same inclusive-range predicate as the SQL: two day ranges conflict when
// start_date <= $end AND end_date >= $start, skipping cancelled and rejected
// rows.
type fakeBookingRepo struct {
	repository.BookingRepository
	bookings []*entity.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) FindOverlapping(ctx context.Context, siteID uuid.UUID, startDate, endDate time.Time) ([]*entity.Booking, error) {
	return f.FindOverlappingExcluding(ctx, siteID, startDate, endDate, uuid.Nil)
}

func (f *fakeBookingRepo) FindOverlappingExcluding(ctx context.Context, siteID uuid.UUID, startDate, endDate time.Time, excludeID uuid.UUID) ([]*entity.Booking, error) {
	var conflicts []*entity.Booking
	for _, booking := range f.bookings {
		if booking.SiteID != siteID || booking.ID == excludeID {
			continue
		}
		if booking.Status == entity.BookingStatusCancelled || booking.Status == entity.BookingStatusRejected {
			continue
		}
		if !booking.StartDate.After(endDate) && !booking.EndDate.Before(startDate) {
			conflicts = append(conflicts, booking)
		}
	}
	return conflicts, nil
}

func (f *fakeBookingRepo) FindDuplicateIntent(ctx context.Context, customerID, centreID, categoryID uuid.UUID) ([]*entity.Booking, error) {
	return nil, nil
}

type fakeSiteRepo struct {
	site     *entity.Site
	approved []uuid.UUID
}

func (f *fakeSiteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	if f.site != nil && f.site.ID == id {
		return f.site, nil
	}
	return nil, nil
}

func (f *fakeSiteRepo) FindApprovedCategoryIDs(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error) {
	return f.approved, nil
}

func (f *fakeSiteRepo) LockForBooking(ctx context.Context, tx pgx.Tx, siteID uuid.UUID) error {
	return nil
}

type fakeCentreRepo struct {
	centre *entity.Centre
}

func (f *fakeCentreRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Centre, error) {
	if f.centre != nil && f.centre.ID == id {
		return f.centre, nil
	}
	return nil, nil
}

type fakeCustomerRepo struct {
	customer *entity.Customer
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if f.customer != nil && f.customer.ID == id {
		return f.customer, nil
	}
	return nil, nil
}

type fakeCategoryRepo struct {
	category *entity.UsageCategory
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.UsageCategory, error) {
	if f.category != nil && f.category.ID == id {
		return f.category, nil
	}
	return nil, nil
}

type fakeInsuranceRepo struct {
	repository.InsuranceRepository
	record *entity.InsuranceRecord
}

func (f *fakeInsuranceRepo) FindLatestByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.InsuranceRecord, error) {
	return f.record, nil
}

type bookingFixture struct {
	bookings  *fakeBookingRepo
	lifecycle *fakeLifecycleRepo
	svc       BookingService
	site      *entity.Site
	customer  *entity.Customer
	category  *entity.UsageCategory
}

// newBookingFixture wires the booking service over in-memory fakes with a
// clean admission input: instant-booking site, unrestricted categories and
// valid insurance, so a creation auto-confirms unless the dates conflict.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	site := &entity.Site{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New()},
		CentreID:       uuid.New(),
		Name:           "Kiosk 12",
		InstantBooking: true,
		WeeklyRate:     decimal.NewFromInt(700),
	}
	centre := &entity.Centre{
		BaseNoDelete: entity.BaseNoDelete{ID: site.CentreID},
		Name:         "Westgate",
		PaymentMode:  entity.PaymentModeStripe,
	}
	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		BusinessName: "Fresh Press Juices",
		Email:        "orders@freshpress.example",
	}
	category := &entity.UsageCategory{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Name:       "Fresh Produce",
	}
	expiry := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	insurance := &entity.InsuranceRecord{
		BaseSimple:    entity.BaseSimple{ID: uuid.New()},
		CustomerID:    customer.ID,
		Success:       true,
		ExpiryDate:    &expiry,
		InsuredAmount: decimal.NewFromInt(20_000_000),
	}

	bookings := &fakeBookingRepo{}
	lifecycleFake := newFakeLifecycleRepo()
	repo := &repository.Repository{
		Booking:   bookings,
		Site:      &fakeSiteRepo{site: site},
		Centre:    &fakeCentreRepo{centre: centre},
		Customer:  &fakeCustomerRepo{customer: customer},
		Category:  &fakeCategoryRepo{category: category},
		Insurance: &fakeInsuranceRepo{record: insurance},
		Lifecycle: lifecycleFake,
	}

	config := &utils.Config{
		Fees: utils.FeeConfig{
			GSTRate:         decimal.NewFromFloat(0.1),
			PlatformFeeRate: decimal.NewFromFloat(0.15),
		},
	}
	log := zap.NewNop()
	lifecycle := NewLifecycleService(fakeDB{}, repo, log)

	return &bookingFixture{
		bookings:  bookings,
		lifecycle: lifecycleFake,
		svc:       NewBookingService(fakeDB{}, repo, lifecycle, config, log),
		site:      site,
		customer:  customer,
		category:  category,
	}
}

func (fx *bookingFixture) createRequest(start, end string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		SiteID:     fx.site.ID.String(),
		CustomerID: fx.customer.ID.String(),
		CategoryID: fx.category.ID.String(),
		StartDate:  start,
		EndDate:    end,
	}
}

func (fx *bookingFixture) seedBooking(status entity.BookingStatus, start, end time.Time) {
	fx.bookings.bookings = append(fx.bookings.bookings, &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		SiteID:       fx.site.ID,
		Status:       status,
		StartDate:    start,
		EndDate:      end,
	})
}

func TestCreateBooking_RejectsOverlappingRange(t *testing.T) {
	fx := newBookingFixture(t)
	fx.seedBooking(entity.BookingStatusConfirmed, day(2026, 10, 1), day(2026, 10, 7))

	for _, pair := range [][2]string{
		{"2026-10-05", "2026-10-10"}, // overlaps the tail
		{"2026-09-28", "2026-10-01"}, // shares only the first day
		{"2026-10-07", "2026-10-10"}, // shares only the last day
		{"2026-10-02", "2026-10-06"}, // fully contained
		{"2026-09-28", "2026-10-12"}, // fully containing
	} {
		_, err := fx.svc.CreateBooking(context.Background(), fx.createRequest(pair[0], pair[1]), Actor{})
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("(%s, %s): expected ConflictError, got %v", pair[0], pair[1], err)
		}
	}

	if len(fx.bookings.bookings) != 1 {
		t.Fatalf("conflicting requests must not persist, got %d bookings", len(fx.bookings.bookings))
	}
	if len(fx.lifecycle.history) != 0 {
		t.Fatalf("conflicting requests must not write history, got %d entries", len(fx.lifecycle.history))
	}
}

func TestCreateBooking_AllowsAdjacentRanges(t *testing.T) {
	fx := newBookingFixture(t)
	fx.seedBooking(entity.BookingStatusConfirmed, day(2026, 10, 1), day(2026, 10, 7))

	ctx := context.Background()

	// Starts the day after the existing range ends.
	resp, err := fx.svc.CreateBooking(ctx, fx.createRequest("2026-10-08", "2026-10-14"), Actor{})
	if err != nil {
		t.Fatalf("adjacent range after existing booking: %v", err)
	}
	if resp.Status != entity.BookingStatusConfirmed {
		t.Fatalf("clean adjacent booking should auto-confirm, got %s", resp.Status)
	}
	if resp.RequiresApproval {
		t.Fatalf("clean adjacent booking should not require approval, reasons: %v", resp.ApprovalReasons)
	}

	// Ends the day before the existing range starts.
	if _, err := fx.svc.CreateBooking(ctx, fx.createRequest("2026-09-25", "2026-09-30"), Actor{}); err != nil {
		t.Fatalf("adjacent range before existing booking: %v", err)
	}

	if len(fx.bookings.bookings) != 3 {
		t.Fatalf("expected both adjacent bookings persisted, got %d total", len(fx.bookings.bookings))
	}
	if len(fx.lifecycle.history) != 2 {
		t.Fatalf("expected a creation history entry per booking, got %d", len(fx.lifecycle.history))
	}
	for _, entry := range fx.lifecycle.history {
		if entry.PreviousStatus != nil {
			t.Fatalf("creation entries must have nil previous status, got %v", *entry.PreviousStatus)
		}
	}
}

func TestCreateBooking_IgnoresCancelledAndRejected(t *testing.T) {
	fx := newBookingFixture(t)
	fx.seedBooking(entity.BookingStatusCancelled, day(2026, 10, 1), day(2026, 10, 7))
	fx.seedBooking(entity.BookingStatusRejected, day(2026, 10, 1), day(2026, 10, 7))

	if _, err := fx.svc.CreateBooking(context.Background(), fx.createRequest("2026-10-03", "2026-10-05"), Actor{}); err != nil {
		t.Fatalf("cancelled and rejected bookings must not block the range: %v", err)
	}
	if len(fx.bookings.bookings) != 3 {
		t.Fatalf("expected the new booking persisted alongside the dead rows, got %d", len(fx.bookings.bookings))
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2026-10-01", "2026-10-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestParseDateRange_SingleDayAllowed(t *testing.T) {
	if _, _, err := parseDateRange("2026-10-01", "2026-10-01"); err != nil {
		t.Fatalf("start == end is a valid one-day range, got %v", err)
	}
}

func TestParseDateRange_EndBeforeStart(t *testing.T) {
	_, _, err := parseDateRange("2026-10-07", "2026-10-01")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseDateRange_MalformedDates(t *testing.T) {
	for _, pair := range [][2]string{
		{"01/10/2026", "2026-10-07"},
		{"2026-10-01", "next friday"},
		{"", "2026-10-07"},
	} {
		_, _, err := parseDateRange(pair[0], pair[1])
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("(%q, %q): expected ValidationError, got %v", pair[0], pair[1], err)
		}
	}
}
