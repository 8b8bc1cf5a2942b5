package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"retail-leasing/pkg/utils"

	"github.com/google/uuid"
)

func TestActor_SetsContextFromHeaders(t *testing.T) {
	staffID := uuid.New()

	var gotID uuid.UUID
	var gotName string
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok = utils.GetActorIDFromContext(r.Context())
		gotName, _ = utils.GetActorNameFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Staff-Id", staffID.String())
	req.Header.Set("X-Staff-Name", "Dana Whitfield")

	Actor()(next).ServeHTTP(httptest.NewRecorder(), req)

	if !ok || gotID != staffID {
		t.Fatalf("expected actor ID %s on context, got %v (ok=%v)", staffID, gotID, ok)
	}
	if gotName != "Dana Whitfield" {
		t.Fatalf("expected actor name on context, got %q", gotName)
	}
}

func TestActor_AnonymousPassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := utils.GetActorIDFromContext(r.Context()); ok {
			t.Fatalf("anonymous request must not carry an actor")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Actor()(next).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatalf("handler not reached")
	}
}

func TestActor_RejectsMalformedID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run on malformed header")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Staff-Id", "not-a-uuid")

	rec := httptest.NewRecorder()
	Actor()(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRequireActor(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Without an actor the request is rejected.
	rec := httptest.NewRecorder()
	RequireActor()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// With one it passes.
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	req = req.WithContext(utils.SetActorContext(req.Context(), uuid.New(), "Dana Whitfield"))
	rec = httptest.NewRecorder()
	RequireActor()(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
