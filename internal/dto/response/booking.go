package response

import (
	"strings"
	"time"

	"retail-leasing/internal/data/entity"
)

type BookingResponse struct {
	ID                        string               `json:"id"`
	BookingNumber             string               `json:"booking_number"`
	SiteID                    string               `json:"site_id"`
	CustomerID                string               `json:"customer_id"`
	CategoryID                string               `json:"category_id"`
	StartDate                 string               `json:"start_date"`
	EndDate                   string               `json:"end_date"`
	TotalAmount               string               `json:"total_amount"`
	GSTAmount                 string               `json:"gst_amount"`
	PlatformFee               string               `json:"platform_fee"`
	OwnerAmount               string               `json:"owner_amount"`
	Status                    entity.BookingStatus `json:"status"`
	PaymentMethod             entity.PaymentMethod `json:"payment_method"`
	PaidAt                    *time.Time           `json:"paid_at,omitempty"`
	RequiresApproval          bool                 `json:"requires_approval"`
	ApprovalReasons           []string             `json:"approval_reasons,omitempty"`
	AdditionalCategoryDetails *string              `json:"additional_category_details,omitempty"`
	CreatedAt                 time.Time            `json:"created_at"`
}

type StatusHistoryResponse struct {
	ID             string     `json:"id"`
	PreviousStatus *string    `json:"previous_status"`
	NewStatus      string     `json:"new_status"`
	ChangedBy      *string    `json:"changed_by,omitempty"`
	ChangedByName  *string    `json:"changed_by_name,omitempty"`
	Reason         *string    `json:"reason,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
}

type BookingDetailResponse struct {
	BookingResponse
	History []StatusHistoryResponse `json:"history"`
}

// Helper converters

func BookingToResponse(booking *entity.Booking) BookingResponse {
	var reasons []string
	if booking.ApprovalReasons != nil && *booking.ApprovalReasons != "" {
		reasons = strings.Split(*booking.ApprovalReasons, "; ")
	}

	return BookingResponse{
		ID:                        booking.ID.String(),
		BookingNumber:             booking.BookingNumber,
		SiteID:                    booking.SiteID.String(),
		CustomerID:                booking.CustomerID.String(),
		CategoryID:                booking.CategoryID.String(),
		StartDate:                 booking.StartDate.Format("2006-01-02"),
		EndDate:                   booking.EndDate.Format("2006-01-02"),
		TotalAmount:               booking.TotalAmount.StringFixed(2),
		GSTAmount:                 booking.GSTAmount.StringFixed(2),
		PlatformFee:               booking.PlatformFee.StringFixed(2),
		OwnerAmount:               booking.OwnerAmount.StringFixed(2),
		Status:                    booking.Status,
		PaymentMethod:             booking.PaymentMethod,
		PaidAt:                    booking.PaidAt,
		RequiresApproval:          booking.RequiresApproval,
		ApprovalReasons:           reasons,
		AdditionalCategoryDetails: booking.AdditionalCategoryDetails,
		CreatedAt:                 booking.CreatedAt,
	}
}

func StatusHistoryToResponses(entries []*entity.StatusHistoryEntry) []StatusHistoryResponse {
	responses := make([]StatusHistoryResponse, len(entries))
	for i, entry := range entries {
		var previousStatus *string
		if entry.PreviousStatus != nil {
			s := string(*entry.PreviousStatus)
			previousStatus = &s
		}
		var changedBy *string
		if entry.ChangedBy != nil {
			s := entry.ChangedBy.String()
			changedBy = &s
		}

		responses[i] = StatusHistoryResponse{
			ID:             entry.ID.String(),
			PreviousStatus: previousStatus,
			NewStatus:      string(entry.NewStatus),
			ChangedBy:      changedBy,
			ChangedByName:  entry.ChangedByName,
			Reason:         entry.Reason,
			Timestamp:      entry.CreatedAt,
		}
	}
	return responses
}
