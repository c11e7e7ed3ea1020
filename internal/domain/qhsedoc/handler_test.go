package qhsedoc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospiops/facilityhub/internal/platform/alerts"
	"github.com/hospiops/facilityhub/internal/platform/auth"
)

func request(t *testing.T, method, target, body string, roles []string, sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx := req.Context()
	if roles != nil {
		ctx = context.WithValue(ctx, auth.UserRolesKey, roles)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, auth.SessionIDKey, sessionID)
	}
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestHandler(repo *mockRepo) *Handler {
	mgr := alerts.NewManager(nil, 30, alerts.WithClock(func() time.Time { return testNow }))
	return NewHandler(newTestService(repo), mgr)
}

func TestHandlerTransitionForbidden(t *testing.T) {
	repo := newMockRepo(QHSEDocument{ID: "d1", Status: StatusEnValidation})
	h := newTestHandler(repo)

	c, _ := request(t, http.MethodPut, "/api/documents/d1/status", `{"status":"valide"}`, []string{"technicien"}, "")
	c.SetParamNames("id")
	c.SetParamValues("d1")

	err := h.Transition(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestHandlerTransitionAllowed(t *testing.T) {
	repo := newMockRepo(QHSEDocument{ID: "d1", Status: StatusEnValidation})
	h := newTestHandler(repo)

	c, rec := request(t, http.MethodPut, "/api/documents/d1/status", `{"status":"valide"}`, []string{"dop"}, "")
	c.SetParamNames("id")
	c.SetParamValues("d1")

	if err := h.Transition(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got View
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != StatusValide {
		t.Errorf("expected valide, got %q", got.Status)
	}
}

func TestHandlerAlerts(t *testing.T) {
	repo := newMockRepo(QHSEDocument{
		ID: "d1", Code: "PRO-001", Status: StatusValide, ValidityDate: onDay(-3),
	})
	h := newTestHandler(repo)

	c, rec := request(t, http.MethodGet, "/api/documents/alerts", "", nil, "sess-1")
	if err := h.Alerts(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []alerts.Alert
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Bucket != alerts.BucketExpired {
		t.Errorf("expected one expired alert, got %+v", got)
	}
}

func TestHandlerAcknowledgeAlertValidation(t *testing.T) {
	h := newTestHandler(newMockRepo())

	c, _ := request(t, http.MethodPost, "/api/documents/alerts/ack",
		`{"bucket":"bogus","document_id":"d1"}`, nil, "sess-1")
	err := h.AcknowledgeAlert(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown bucket, got %v", err)
	}

	c, rec := request(t, http.MethodPost, "/api/documents/alerts/ack",
		`{"bucket":"expired","document_id":"d1"}`, nil, "sess-1")
	if err := h.AcknowledgeAlert(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
