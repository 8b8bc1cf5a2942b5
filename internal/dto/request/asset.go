package request

type CreateAssetBookingRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=vacant_shop third_line_income"`
	CentreID   string `json:"centre_id" validate:"required,uuid4"`
	CustomerID string `json:"customer_id" validate:"required,uuid4"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Amount     string `json:"amount" validate:"required"`
}

type ChangeAssetStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed cancelled rejected completed"`
	Reason *string `json:"reason,omitempty"`
}
