package middleware

import (
	"net/http"

	"retail-leasing/pkg/utils"

	"github.com/google/uuid"
)

// Actor reads the staff identity headers and, when present, puts them on the
// request context. Requests without the headers pass through untouched.
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID := r.Header.Get("X-Staff-Id")
			staffName := r.Header.Get("X-Staff-Name")

			if staffID != "" {
				actorID, err := uuid.Parse(staffID)
				if err != nil {
					utils.ResponseBadRequest(w, "Invalid X-Staff-Id header", nil)
					return
				}
				ctx := utils.SetActorContext(r.Context(), actorID, staffName)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireActor rejects requests that did not provide a staff identity.
func RequireActor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetActorIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Staff identity required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
