package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"retail-leasing/internal/data/entity"
	"retail-leasing/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakeTx satisfies pgx.Tx for fakes that never touch the connection.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

// fakeDB hands out fake transactions; everything else is unreachable in these
// tests.
type fakeDB struct{}

func (fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}
func (fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}
func (fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeDB) Ping(ctx context.Context) error            { return nil }
func (fakeDB) Close()                                    {}

// fakeLifecycleRepo keeps bookings and their audit rows in memory.
type fakeLifecycleRepo struct {
	bookings      map[uuid.UUID]*entity.Booking
	assetBookings map[uuid.UUID]*entity.AssetBooking
	history       []*entity.StatusHistoryEntry
	auditLog      []*entity.AuditLogEntry
}

func newFakeLifecycleRepo() *fakeLifecycleRepo {
	return &fakeLifecycleRepo{
		bookings:      map[uuid.UUID]*entity.Booking{},
		assetBookings: map[uuid.UUID]*entity.AssetBooking{},
	}
}

func (f *fakeLifecycleRepo) GetBookingForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeLifecycleRepo) SetBookingStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.BookingStatus, extra entity.StatusExtra) error {
	booking, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	booking.Status = status
	if extra.PaidAt != nil {
		booking.PaidAt = extra.PaidAt
	}
	return nil
}

func (f *fakeLifecycleRepo) InsertHistory(ctx context.Context, tx pgx.Tx, hist *entity.StatusHistoryEntry) error {
	f.history = append(f.history, hist)
	return nil
}

func (f *fakeLifecycleRepo) GetAssetBookingForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.AssetBooking, error) {
	assetBooking, ok := f.assetBookings[id]
	if !ok {
		return nil, nil
	}
	copied := *assetBooking
	return &copied, nil
}

func (f *fakeLifecycleRepo) SetAssetBookingStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.BookingStatus) error {
	assetBooking, ok := f.assetBookings[id]
	if !ok {
		return errors.New("asset booking not found")
	}
	assetBooking.Status = status
	return nil
}

func (f *fakeLifecycleRepo) InsertAuditLog(ctx context.Context, tx pgx.Tx, entry *entity.AuditLogEntry) error {
	f.auditLog = append(f.auditLog, entry)
	return nil
}

func newLifecycleFixture(t *testing.T) (*fakeLifecycleRepo, LifecycleService) {
	t.Helper()
	fake := newFakeLifecycleRepo()
	repo := &repository.Repository{Lifecycle: fake}
	return fake, NewLifecycleService(fakeDB{}, repo, zap.NewNop())
}

func seedBooking(fake *fakeLifecycleRepo, status entity.BookingStatus) uuid.UUID {
	id := uuid.New()
	fake.bookings[id] = &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Status:       status,
	}
	return id
}

func TestChangeStatus_PendingToConfirmed(t *testing.T) {
	fake, svc := newLifecycleFixture(t)
	id := seedBooking(fake, entity.BookingStatusPending)

	change, err := svc.ChangeStatus(context.Background(), id, entity.BookingStatusConfirmed, ChangeStatusParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change.NewStatus != entity.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", change.NewStatus)
	}
	if fake.bookings[id].Status != entity.BookingStatusConfirmed {
		t.Fatalf("status not persisted, got %s", fake.bookings[id].Status)
	}

	if len(fake.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(fake.history))
	}
	entry := fake.history[0]
	if entry.PreviousStatus == nil || *entry.PreviousStatus != entity.BookingStatusPending {
		t.Fatalf("expected previous status pending, got %v", entry.PreviousStatus)
	}
	if entry.NewStatus != entity.BookingStatusConfirmed {
		t.Fatalf("expected new status confirmed, got %s", entry.NewStatus)
	}
}

func TestChangeStatus_SameStatusIsNoOp(t *testing.T) {
	fake, svc := newLifecycleFixture(t)
	id := seedBooking(fake, entity.BookingStatusPending)

	ctx := context.Background()
	if _, err := svc.ChangeStatus(ctx, id, entity.BookingStatusConfirmed, ChangeStatusParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Retrying the same target must not duplicate history.
	change, err := svc.ChangeStatus(ctx, id, entity.BookingStatusConfirmed, ChangeStatusParams{})
	if err != nil {
		t.Fatalf("retry should be a no-op, got %v", err)
	}
	if change.NewStatus != entity.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", change.NewStatus)
	}
	if len(fake.history) != 1 {
		t.Fatalf("expected one history entry after retry, got %d", len(fake.history))
	}
}

func TestChangeStatus_SameStatusWithPaidAtApplies(t *testing.T) {
	fake, svc := newLifecycleFixture(t)
	id := seedBooking(fake, entity.BookingStatusConfirmed)

	paidAt := time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC)
	_, err := svc.ChangeStatus(context.Background(), id, entity.BookingStatusConfirmed, ChangeStatusParams{
		Extra: entity.StatusExtra{PaidAt: &paidAt},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.bookings[id].PaidAt == nil || !fake.bookings[id].PaidAt.Equal(paidAt) {
		t.Fatalf("expected paid_at %v, got %v", paidAt, fake.bookings[id].PaidAt)
	}
	if len(fake.history) != 1 {
		t.Fatalf("expected a history entry for the paid_at update, got %d", len(fake.history))
	}
}

func TestChangeStatus_NotFound(t *testing.T) {
	_, svc := newLifecycleFixture(t)

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), entity.BookingStatusConfirmed, ChangeStatusParams{})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestChangeStatus_TerminalStateIsImmutable(t *testing.T) {
	fake, svc := newLifecycleFixture(t)

	for _, terminal := range []entity.BookingStatus{entity.BookingStatusCancelled, entity.BookingStatusRejected, entity.BookingStatusCompleted} {
		id := seedBooking(fake, terminal)

		_, err := svc.ChangeStatus(context.Background(), id, entity.BookingStatusConfirmed, ChangeStatusParams{})
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidTransitionError, got %v", terminal, err)
		}
		if fake.bookings[id].Status != terminal {
			t.Fatalf("%s: terminal status must not change, got %s", terminal, fake.bookings[id].Status)
		}
	}
	if len(fake.history) != 0 {
		t.Fatalf("rejected transitions must not write history, got %d entries", len(fake.history))
	}
}

func TestChangeStatus_ForbiddenTransition(t *testing.T) {
	fake, svc := newLifecycleFixture(t)
	id := seedBooking(fake, entity.BookingStatusPending)

	_, err := svc.ChangeStatus(context.Background(), id, entity.BookingStatusCompleted, ChangeStatusParams{})
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.From != entity.BookingStatusPending || invalid.To != entity.BookingStatusCompleted {
		t.Fatalf("unexpected error detail: %v", invalid)
	}
}

func TestChangeStatus_RecordsActorAndReason(t *testing.T) {
	fake, svc := newLifecycleFixture(t)
	id := seedBooking(fake, entity.BookingStatusPending)

	actorID := uuid.New()
	actorName := "Dana Whitfield"
	reason := "insurance certificate invalid"
	_, err := svc.ChangeStatus(context.Background(), id, entity.BookingStatusRejected, ChangeStatusParams{
		Actor:  Actor{ID: &actorID, Name: &actorName},
		Reason: &reason,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := fake.history[0]
	if entry.ChangedBy == nil || *entry.ChangedBy != actorID {
		t.Fatalf("expected changed_by %s, got %v", actorID, entry.ChangedBy)
	}
	if entry.ChangedByName == nil || *entry.ChangedByName != actorName {
		t.Fatalf("expected changed_by_name %q, got %v", actorName, entry.ChangedByName)
	}
	if entry.Reason == nil || *entry.Reason != reason {
		t.Fatalf("expected reason %q, got %v", reason, entry.Reason)
	}
}

func TestRecordCreation_NilPreviousStatus(t *testing.T) {
	fake, svc := newLifecycleFixture(t)

	reasons := ReasonSiteRequiresApproval
	booking := &entity.Booking{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New()},
		Status:          entity.BookingStatusPending,
		ApprovalReasons: &reasons,
	}

	if err := svc.RecordCreation(context.Background(), fakeTx{}, booking, Actor{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.history) != 1 {
		t.Fatalf("expected one creation entry, got %d", len(fake.history))
	}
	entry := fake.history[0]
	if entry.PreviousStatus != nil {
		t.Fatalf("creation entry must have nil previous status, got %v", *entry.PreviousStatus)
	}
	if entry.NewStatus != entity.BookingStatusPending {
		t.Fatalf("expected pending, got %s", entry.NewStatus)
	}
	if entry.Reason == nil || *entry.Reason != reasons {
		t.Fatalf("expected approval reasons as reason, got %v", entry.Reason)
	}
}

func TestChangeAssetStatus_WritesAuditLog(t *testing.T) {
	fake, svc := newLifecycleFixture(t)

	id := uuid.New()
	fake.assetBookings[id] = &entity.AssetBooking{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Kind:         entity.AssetBookingVacantShop,
		Status:       entity.BookingStatusPending,
	}

	change, err := svc.ChangeAssetStatus(context.Background(), id, entity.BookingStatusConfirmed, ChangeStatusParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change.NewStatus != entity.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", change.NewStatus)
	}
	if fake.assetBookings[id].Status != entity.BookingStatusConfirmed {
		t.Fatalf("status not persisted")
	}

	if len(fake.auditLog) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(fake.auditLog))
	}
	entry := fake.auditLog[0]
	if entry.EntityType != entity.EntityTypeVacantShopBooking {
		t.Fatalf("expected entity type %q, got %q", entity.EntityTypeVacantShopBooking, entry.EntityType)
	}
	if entry.PreviousStatus == nil || *entry.PreviousStatus != "pending" {
		t.Fatalf("expected previous status pending, got %v", entry.PreviousStatus)
	}
	if entry.NewStatus != "confirmed" {
		t.Fatalf("expected new status confirmed, got %s", entry.NewStatus)
	}
}

func TestChangeAssetStatus_TerminalRejected(t *testing.T) {
	fake, svc := newLifecycleFixture(t)

	id := uuid.New()
	fake.assetBookings[id] = &entity.AssetBooking{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Kind:         entity.AssetBookingThirdLineIncome,
		Status:       entity.BookingStatusCompleted,
	}

	_, err := svc.ChangeAssetStatus(context.Background(), id, entity.BookingStatusPending, ChangeStatusParams{})
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}
