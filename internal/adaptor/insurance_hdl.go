package adaptor

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"retail-leasing/internal/dto/request"
	"retail-leasing/internal/usecase"
	"retail-leasing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxCertificateSize caps uploaded certificate documents at 10 MB.
const maxCertificateSize = 10 << 20

type InsuranceHandler struct {
	service usecase.InsuranceService
	log     *zap.Logger
}

func NewInsuranceHandler(service usecase.InsuranceService, log *zap.Logger) *InsuranceHandler {
	return &InsuranceHandler{
		service: service,
		log:     log.With(zap.String("handler", "insurance")),
	}
}

// RegisterCertificate handles POST /api/customers/{id}/insurance
func (h *InsuranceHandler) RegisterCertificate(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	var req request.RegisterInsuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	record, err := h.service.RegisterCertificate(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register certificate")
		return
	}

	utils.ResponseCreated(w, "success", record)
}

// UploadCertificate handles POST /api/customers/{id}/insurance/upload
// It accepts a multipart form with a "document" file field.
func (h *InsuranceHandler) UploadCertificate(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	if err := r.ParseMultipartForm(maxCertificateSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		utils.ResponseBadRequest(w, "Document file is required", nil)
		return
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(), filepath.Base(header.Filename))
	tempFile, err := os.Create(tempPath)
	if err != nil {
		h.log.Error("Failed to stage uploaded certificate", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		h.log.Error("Failed to stage uploaded certificate", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	tempFile.Close()

	record, err := h.service.UploadCertificate(r.Context(), customerID, tempPath)
	if err != nil {
		handleServiceError(w, h.log, err, "upload certificate")
		return
	}

	utils.ResponseCreated(w, "success", record)
}

// GetCertificateURL handles GET /api/customers/{id}/insurance/url
func (h *InsuranceHandler) GetCertificateURL(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	url, err := h.service.GetCertificateURL(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get certificate URL")
		return
	}

	utils.ResponseSuccess(w, "success", url)
}
