package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"devfolio/internal/models"
	"devfolio/internal/session"

	"github.com/google/uuid"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "test@devfolio.local",
		DisplayName: "Test User",
		TwoFADone:   twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses. This allows tests to simulate
// the state after LoadSession has run without needing a real Valkey store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

// fakeRoles is a RoleChecker backed by a fixed answer.
type fakeRoles struct {
	admins map[uuid.UUID]bool
	err    error
}

func (f fakeRoles) HasRole(userID uuid.UUID, role models.Role) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return role == models.RoleAdmin && f.admins[userID], nil
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession(true)
		ctx := ctxWithSession(context.Background(), sess)

		got := SessionFromCtx(ctx)
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
		if got.TwoFADone != sess.TwoFADone {
			t.Errorf("TwoFADone: got %v, want %v", got.TwoFADone, sess.TwoFADone)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		got := SessionFromCtx(context.Background())
		if got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		got := SessionFromCtx(ctx)
		if got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("redirects to login when no session", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusSeeOther)
		}
		loc := rr.Header().Get("Location")
		if loc != "/admin/login" {
			t.Errorf("redirect location: got %q, want %q", loc, "/admin/login")
		}
	})

	t.Run("passes through when session exists", func(t *testing.T) {
		sess := newTestSession(true)
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req = req.WithContext(ctxWithSession(req.Context(), sess))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestRequire2FA(t *testing.T) {
	tests := []struct {
		name           string
		session        *session.Data
		wantCode       int
		wantLocation   string
		wantNextCalled bool
	}{
		{
			name:           "redirects to 2FA setup when TwoFADone is false",
			session:        newTestSession(false),
			wantCode:       http.StatusSeeOther,
			wantLocation:   "/admin/2fa/setup",
			wantNextCalled: false,
		},
		{
			name:           "passes through when TwoFADone is true",
			session:        newTestSession(true),
			wantCode:       http.StatusOK,
			wantLocation:   "",
			wantNextCalled: true,
		},
		{
			name:           "passes through when session is nil (RequireAuth should catch this first)",
			session:        nil,
			wantCode:       http.StatusOK,
			wantLocation:   "",
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := Require2FA(inner)

			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.session != nil {
				req = req.WithContext(ctxWithSession(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if *called != tt.wantNextCalled {
				t.Errorf("next handler called: got %v, want %v", *called, tt.wantNextCalled)
			}
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantLocation != "" {
				loc := rr.Header().Get("Location")
				if loc != tt.wantLocation {
					t.Errorf("redirect location: got %q, want %q", loc, tt.wantLocation)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	adminID := uuid.New()
	plainID := uuid.New()
	roles := fakeRoles{admins: map[uuid.UUID]bool{adminID: true}}

	adminSession := newTestSession(true)
	adminSession.UserID = adminID
	plainSession := newTestSession(true)
	plainSession.UserID = plainID
	pendingSession := newTestSession(false)
	pendingSession.UserID = adminID

	tests := []struct {
		name           string
		checker        RoleChecker
		session        *session.Data
		wantCode       int
		wantLocation   string
		wantNextCalled bool
	}{
		{
			name:           "redirects to login when session is nil",
			checker:        roles,
			session:        nil,
			wantCode:       http.StatusSeeOther,
			wantLocation:   "/admin/login",
			wantNextCalled: false,
		},
		{
			name:           "redirects to login for authenticated user without the role",
			checker:        roles,
			session:        plainSession,
			wantCode:       http.StatusSeeOther,
			wantLocation:   "/admin/login",
			wantNextCalled: false,
		},
		{
			name:           "redirects to login when the role check errors",
			checker:        fakeRoles{err: errors.New("db down")},
			session:        adminSession,
			wantCode:       http.StatusSeeOther,
			wantLocation:   "/admin/login",
			wantNextCalled: false,
		},
		{
			name:           "redirects admin to 2FA setup before verification",
			checker:        roles,
			session:        pendingSession,
			wantCode:       http.StatusSeeOther,
			wantLocation:   "/admin/2fa/setup",
			wantNextCalled: false,
		},
		{
			name:           "passes through for verified admin",
			checker:        roles,
			session:        adminSession,
			wantCode:       http.StatusOK,
			wantLocation:   "",
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := RequireAdmin(tt.checker)(inner)

			req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
			if tt.session != nil {
				req = req.WithContext(ctxWithSession(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if *called != tt.wantNextCalled {
				t.Errorf("next handler called: got %v, want %v", *called, tt.wantNextCalled)
			}
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantLocation != "" {
				loc := rr.Header().Get("Location")
				if loc != tt.wantLocation {
					t.Errorf("redirect location: got %q, want %q", loc, tt.wantLocation)
				}
			}
			// The guard never answers 403; non-admins only ever see the
			// login page.
			if rr.Code == http.StatusForbidden {
				t.Error("admin guard must not reveal the panel with a 403")
			}
		})
	}
}
