package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appraise/internal/auth"
	domauth "appraise/internal/domain/auth"
)

func authedRequest(t *testing.T, secret, role string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthAttachesUser(t *testing.T) {
	const secret = "test-secret"

	var got UserContext
	var ok bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), authedRequest(t, secret, domauth.RoleHR))
	if !ok || got.UserID != "u1" || got.Role != domauth.RoleHR {
		t.Fatalf("expected authenticated hr user, got %+v ok=%v", got, ok)
	}
}

func TestAuthIgnoresBadToken(t *testing.T) {
	handler := Auth("right-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("user must not be attached for a token signed with another secret")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), authedRequest(t, "wrong-secret", domauth.RoleHR))
}

func TestRequirePermission(t *testing.T) {
	const secret = "test-secret"
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := Auth(secret)(RequirePermission(domauth.PermAppraisalsDecide)(next))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request should be 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, authedRequest(t, secret, domauth.RoleEmployee))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("employee deciding appraisals should be 403, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, authedRequest(t, secret, domauth.RoleHR))
	if rec.Code != http.StatusOK {
		t.Fatalf("hr should pass, got %d", rec.Code)
	}
}
