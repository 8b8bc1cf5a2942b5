package adaptor

import (
	"encoding/json"
	"net/http"

	"retail-leasing/internal/dto/request"
	"retail-leasing/internal/usecase"
	"retail-leasing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AssetBookingHandler struct {
	service usecase.AssetBookingService
	log     *zap.Logger
}

func NewAssetBookingHandler(service usecase.AssetBookingService, log *zap.Logger) *AssetBookingHandler {
	return &AssetBookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "asset_booking")),
	}
}

// CreateAssetBooking handles POST /api/asset-bookings
func (h *AssetBookingHandler) CreateAssetBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	assetBooking, err := h.service.CreateAssetBooking(r.Context(), &req, actorFromContext(r))
	if err != nil {
		handleServiceError(w, h.log, err, "create asset booking")
		return
	}

	utils.ResponseCreated(w, "success", assetBooking)
}

// GetAssetBooking handles GET /api/asset-bookings/{id}
func (h *AssetBookingHandler) GetAssetBooking(w http.ResponseWriter, r *http.Request) {
	assetBookingID := chi.URLParam(r, "id")
	if assetBookingID == "" {
		utils.ResponseBadRequest(w, "Asset booking ID is required", nil)
		return
	}

	assetBooking, err := h.service.GetAssetBooking(r.Context(), assetBookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get asset booking")
		return
	}

	utils.ResponseSuccess(w, "success", assetBooking)
}

// ChangeAssetStatus handles PUT /api/admin/asset-bookings/{id}/status
func (h *AssetBookingHandler) ChangeAssetStatus(w http.ResponseWriter, r *http.Request) {
	assetBookingID := chi.URLParam(r, "id")
	if assetBookingID == "" {
		utils.ResponseBadRequest(w, "Asset booking ID is required", nil)
		return
	}

	var req request.ChangeAssetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ChangeAssetStatus(r.Context(), assetBookingID, &req, actorFromContext(r)); err != nil {
		handleServiceError(w, h.log, err, "change asset booking status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
