package usecase

import (
	"fmt"
	"strings"
	"time"

	"retail-leasing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coverage floor for public liability insurance, in dollars. The floor is
// inclusive: exactly $20M passes.
var minimumInsuredAmount = decimal.NewFromInt(20_000_000)

// Reason wordings are stable: staff UIs and downstream reports match on them.
const (
	ReasonSiteRequiresApproval  = "Site requires manual approval for all bookings"
	ReasonInsuranceMissing      = "No insurance certificate on file"
	ReasonInsuranceUnreadable   = "Insurance certificate could not be read"
	ReasonInsuranceExpired      = "Insurance expired before booking end date"
	ReasonCustomCategoryDetails = "Custom usage category details provided"
	ReasonDuplicateBooking      = "Duplicate booking: customer already has booking with same category at this centre"
	ReasonFallback              = "Manual approval required"
)

// AdmissionInput is an immutable snapshot of everything the admission decision
// depends on, captured once before evaluation. In particular the approved
// category set is not re-read mid-decision.
type AdmissionInput struct {
	InstantBooking bool

	// Empty set means the site is unrestricted: every category is implicitly
	// approved. Deliberate default-allow policy, not an edge case.
	ApprovedCategoryIDs []uuid.UUID
	CategoryID          uuid.UUID
	CategoryName        string

	Insurance      *entity.InsuranceRecord
	BookingEndDate time.Time

	AdditionalCategoryDetails *string
	DuplicateIntent           bool
}

type AdmissionDecision struct {
	RequiresApproval bool
	Reasons          []string
}

// JoinedReasons is the storage/display form; the slice stays available for
// structured consumption.
func (d AdmissionDecision) JoinedReasons() string {
	return strings.Join(d.Reasons, "; ")
}

// EvaluateAdmission decides whether a booking may be auto-confirmed or must
// be queued for manual review. Every rule runs independently and appends its
// own reason, so staff see all applicable reasons at once; nothing
// short-circuits.
func EvaluateAdmission(in AdmissionInput) AdmissionDecision {
	var reasons []string

	if !in.InstantBooking {
		reasons = append(reasons, ReasonSiteRequiresApproval)
	}

	switch {
	case in.Insurance == nil:
		reasons = append(reasons, ReasonInsuranceMissing)
	case !in.Insurance.Success:
		reasons = append(reasons, ReasonInsuranceUnreadable)
	default:
		if in.Insurance.ExpiryDate != nil && in.Insurance.ExpiryDate.Before(in.BookingEndDate) {
			reasons = append(reasons, ReasonInsuranceExpired)
		}
		if in.Insurance.InsuredAmount.LessThan(minimumInsuredAmount) {
			reasons = append(reasons, insufficientCoverageReason(in.Insurance.InsuredAmount))
		}
	}

	if len(in.ApprovedCategoryIDs) > 0 && !containsUUID(in.ApprovedCategoryIDs, in.CategoryID) {
		reasons = append(reasons, fmt.Sprintf("Usage category %q not approved for this site", in.CategoryName))
	}

	if in.AdditionalCategoryDetails != nil && strings.TrimSpace(*in.AdditionalCategoryDetails) != "" {
		reasons = append(reasons, ReasonCustomCategoryDetails)
	}

	if in.DuplicateIntent {
		reasons = append(reasons, ReasonDuplicateBooking)
	}

	return AdmissionDecision{
		RequiresApproval: len(reasons) > 0,
		Reasons:          reasons,
	}
}

// insufficientCoverageReason formats the held amount in millions with one
// decimal place, e.g. "$10.0M".
func insufficientCoverageReason(insuredAmount decimal.Decimal) string {
	millions := insuredAmount.Div(decimal.NewFromInt(1_000_000))
	return fmt.Sprintf("Insufficient insurance coverage ($%sM, requires $20M)", millions.StringFixed(1))
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
