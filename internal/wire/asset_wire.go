package wire

import (
	"retail-leasing/internal/adaptor"
	"retail-leasing/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAssetBooking(r chi.Router, assetHandler *adaptor.AssetBookingHandler) {
	// POST /api/asset-bookings - Vacant-shop and third-line-income bookings
	r.Post("/api/asset-bookings", assetHandler.CreateAssetBooking)

	// GET /api/asset-bookings/{id} - Details with audit trail
	r.Get("/api/asset-bookings/{id}", assetHandler.GetAssetBooking)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/asset-bookings", func(r chi.Router) {
		r.Use(middleware.RequireActor())

		// PUT /api/admin/asset-bookings/{id}/status - Status change with audit
		r.Put("/{id}/status", assetHandler.ChangeAssetStatus)
	})
}
