package wire

import (
	"retail-leasing/internal/adaptor"
	"retail-leasing/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - Create a lease booking
	r.Post("/api/bookings", bookingHandler.CreateBooking)

	// GET /api/bookings/{id} - Booking details with status history
	r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

	// GET /api/bookings/number/{number} - Lookup by booking number
	r.Get("/api/bookings/number/{number}", bookingHandler.GetBookingByNumber)

	// GET /api/bookings/{id}/history - Status history only
	r.Get("/api/bookings/{id}/history", bookingHandler.GetBookingHistory)

	// GET /api/customers/{id}/bookings - A customer's bookings, paginated
	r.Get("/api/customers/{id}/bookings", bookingHandler.GetCustomerBookings)

	// PUT /api/bookings/{id}/cancel - Customer-side cancellation
	r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

	// ==================== ADMIN ROUTES ====================
	// Staff decisions on the approval queue plus direct edits
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.RequireActor())

		// PUT /api/admin/bookings/{id}/approve - Confirm a pending booking
		r.Put("/{id}/approve", bookingHandler.ApproveBooking)

		// PUT /api/admin/bookings/{id}/reject - Reject with a reason
		r.Put("/{id}/reject", bookingHandler.RejectBooking)

		// PUT /api/admin/bookings/{id}/complete - Mark a finished lease
		r.Put("/{id}/complete", bookingHandler.CompleteBooking)

		// PATCH /api/admin/bookings/{id} - Edit dates, details or status
		r.Patch("/{id}", bookingHandler.UpdateBooking)
	})
}
