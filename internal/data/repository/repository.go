package repository

import (
	"retail-leasing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking       BookingRepository
	Site          SiteRepository
	Centre        CentreRepository
	Customer      CustomerRepository
	Category      CategoryRepository
	Insurance     InsuranceRepository
	StatusHistory StatusHistoryRepository
	AuditLog      AuditLogRepository
	AssetBooking  AssetBookingRepository
	Lifecycle     LifecycleRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:       NewBookingRepository(db, log),
		Site:          NewSiteRepository(db, log),
		Centre:        NewCentreRepository(db, log),
		Customer:      NewCustomerRepository(db, log),
		Category:      NewCategoryRepository(db, log),
		Insurance:     NewInsuranceRepository(db, log),
		StatusHistory: NewStatusHistoryRepository(db, log),
		AuditLog:      NewAuditLogRepository(db, log),
		AssetBooking:  NewAssetBookingRepository(db, log),
		Lifecycle:     NewLifecycleRepository(log),
	}
}
