package request

type CreateBookingRequest struct {
	SiteID                    string  `json:"site_id" validate:"required,uuid4"`
	CustomerID                string  `json:"customer_id" validate:"required,uuid4"`
	CategoryID                string  `json:"category_id" validate:"required,uuid4"`
	StartDate                 string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	AdditionalCategoryDetails *string `json:"additional_category_details,omitempty"`
}

type ApproveBookingRequest struct {
	// RFC3339 payment capture timestamp, when the booking was already paid
	// through Stripe before approval.
	PaidAt *string `json:"paid_at,omitempty"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type AdminUpdateBookingRequest struct {
	StartDate                 *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate                   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AdditionalCategoryDetails *string `json:"additional_category_details,omitempty"`
	Status                    *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled rejected completed"`
	Reason                    *string `json:"reason,omitempty"`
}
