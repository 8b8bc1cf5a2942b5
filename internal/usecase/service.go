package usecase

import (
	"retail-leasing/internal/data/repository"
	"retail-leasing/pkg/database"
	"retail-leasing/pkg/ocr"
	"retail-leasing/pkg/storage"
	"retail-leasing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking      BookingService
	AssetBooking AssetBookingService
	Insurance    InsuranceService
	Lifecycle    LifecycleService
}

func NewService(db database.PgxIface, repo *repository.Repository, store storage.Service, extractor ocr.Extractor, config *utils.Config, log *zap.Logger) *Service {
	lifecycle := NewLifecycleService(db, repo, log)

	return &Service{
		Booking:      NewBookingService(db, repo, lifecycle, config, log),
		AssetBooking: NewAssetBookingService(db, repo, lifecycle, log),
		Insurance:    NewInsuranceService(repo, store, extractor, log),
		Lifecycle:    lifecycle,
	}
}
