// internal/wire/wire.go
package wire

import (
	"net/http"

	"retail-leasing/internal/adaptor"
	"retail-leasing/internal/data/repository"
	"retail-leasing/internal/usecase"
	"retail-leasing/pkg/database"
	"retail-leasing/pkg/middleware"
	"retail-leasing/pkg/ocr"
	"retail-leasing/pkg/storage"
	"retail-leasing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(db database.PgxIface, repo *repository.Repository, store storage.Service, extractor ocr.Extractor, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services and handlers
	service := usecase.NewService(db, repo, store, extractor, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Actor())

	// Apply routes
	wireBooking(r, handler.Booking)
	wireAssetBooking(r, handler.AssetBooking)
	wireInsurance(r, handler.Insurance)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
