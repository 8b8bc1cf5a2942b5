package adaptor

import (
	"errors"
	"net/http"

	"retail-leasing/internal/usecase"
	"retail-leasing/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	AssetBooking *AssetBookingHandler
	Insurance    *InsuranceHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		AssetBooking: NewAssetBookingHandler(service.AssetBooking, log),
		Insurance:    NewInsuranceHandler(service.Insurance, log),
	}
}

// actorFromContext reads the staff identity placed on the context by the
// actor middleware. Both fields stay nil for anonymous requests.
func actorFromContext(r *http.Request) usecase.Actor {
	var actor usecase.Actor
	if id, ok := utils.GetActorIDFromContext(r.Context()); ok {
		actor.ID = &id
	}
	if name, ok := utils.GetActorNameFromContext(r.Context()); ok && name != "" {
		actor.Name = &name
	}
	return actor
}

// handleServiceError maps service errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		conflictErr   *usecase.ConflictError
		notFoundErr   *usecase.NotFoundError
		transitionErr *usecase.InvalidTransitionError
		validationErr *usecase.ValidationError
	)

	switch {
	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - date conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.As(err, &notFoundErr):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &transitionErr):
		log.Warn(operation+" failed - invalid transition",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
