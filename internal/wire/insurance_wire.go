package wire

import (
	"retail-leasing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireInsurance(r chi.Router, insuranceHandler *adaptor.InsuranceHandler) {
	// POST /api/customers/{id}/insurance - Register an already-stored document
	r.Post("/api/customers/{id}/insurance", insuranceHandler.RegisterCertificate)

	// POST /api/customers/{id}/insurance/upload - Upload then register
	r.Post("/api/customers/{id}/insurance/upload", insuranceHandler.UploadCertificate)

	// GET /api/customers/{id}/insurance/url - Short-lived document link
	r.Get("/api/customers/{id}/insurance/url", insuranceHandler.GetCertificateURL)
}
