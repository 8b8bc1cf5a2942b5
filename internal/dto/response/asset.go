package response

import (
	"time"

	"retail-leasing/internal/data/entity"
)

type AssetBookingResponse struct {
	ID         string               `json:"id"`
	Kind       string               `json:"kind"`
	CentreID   string               `json:"centre_id"`
	CustomerID string               `json:"customer_id"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Amount     string               `json:"amount"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

type AuditLogResponse struct {
	ID             string    `json:"id"`
	EntityType     string    `json:"entity_type"`
	PreviousStatus *string   `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      *string   `json:"changed_by,omitempty"`
	Reason         *string   `json:"reason,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type AssetBookingDetailResponse struct {
	AssetBookingResponse
	AuditTrail []AuditLogResponse `json:"audit_trail"`
}

func AssetBookingToResponse(assetBooking *entity.AssetBooking) AssetBookingResponse {
	return AssetBookingResponse{
		ID:         assetBooking.ID.String(),
		Kind:       string(assetBooking.Kind),
		CentreID:   assetBooking.CentreID.String(),
		CustomerID: assetBooking.CustomerID.String(),
		StartDate:  assetBooking.StartDate.Format("2006-01-02"),
		EndDate:    assetBooking.EndDate.Format("2006-01-02"),
		Amount:     assetBooking.Amount.StringFixed(2),
		Status:     assetBooking.Status,
		CreatedAt:  assetBooking.CreatedAt,
	}
}

func AuditLogToResponses(entries []*entity.AuditLogEntry) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(entries))
	for i, entry := range entries {
		var changedBy *string
		if entry.ChangedBy != nil {
			s := entry.ChangedBy.String()
			changedBy = &s
		}

		responses[i] = AuditLogResponse{
			ID:             entry.ID.String(),
			EntityType:     entry.EntityType,
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			ChangedBy:      changedBy,
			Reason:         entry.Reason,
			Timestamp:      entry.CreatedAt,
		}
	}
	return responses
}
