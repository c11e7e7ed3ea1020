package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hospiops/facilityhub/internal/platform/auth"
)

func newTestContext(t *testing.T, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMe(t *testing.T) {
	h := NewHandler(NewService(newMockUserRepo(
		User{ID: "u1", Name: "Karim", Role: RoleTechnicien, Service: ServiceTechnique},
	)))

	c, rec := newTestContext(t, "u1")
	if err := h.Me(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "Karim" || got.Service != ServiceTechnique {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestMeUnauthenticated(t *testing.T) {
	h := NewHandler(NewService(newMockUserRepo()))

	c, _ := newTestContext(t, "")
	err := h.Me(c)
	if err == nil {
		t.Fatal("expected error for missing user")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMeUnknownUser(t *testing.T) {
	h := NewHandler(NewService(newMockUserRepo()))

	c, _ := newTestContext(t, "ghost")
	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
