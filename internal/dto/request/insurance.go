package request

type RegisterInsuranceRequest struct {
	// Storage key of the already-uploaded certificate document.
	DocumentKey string `json:"document_key" validate:"required,min=1"`
}
