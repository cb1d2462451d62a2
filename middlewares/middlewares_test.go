package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

var testSecret = []byte("middleware-secret")

type fakeSessions struct {
	sessions map[uuid.UUID]*models.Session
	users    map[uuid.UUID]*models.User
}

func (f *fakeSessions) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return s, nil
}

func (f *fakeSessions) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[uuid.UUID]*models.Session{}, users: map[uuid.UUID]*models.User{}}
}

func (f *fakeSessions) login(t *testing.T, role models.Role, expiresAt time.Time) string {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: "x@example.com", Role: role}
	session := &models.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: expiresAt}
	f.users[user.ID] = user
	f.sessions[session.ID] = session

	token, err := utils.GenerateSessionToken(testSecret, session.ID, user.ID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	return token
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireAdmin(t *testing.T) {
	store := newFakeSessions()
	auth := NewAuthenticator(store, testSecret)
	handler := auth.AuthMiddleware(RequireAdmin(http.HandlerFunc(okHandler)))

	admin := store.login(t, models.RoleAdmin, time.Now().Add(time.Hour))
	customer := store.login(t, models.RoleCustomer, time.Now().Add(time.Hour))
	expired := store.login(t, models.RoleAdmin, time.Now().Add(-time.Minute))
	orphan, _ := utils.GenerateSessionToken(testSecret, uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	forged, _ := utils.GenerateSessionToken([]byte("other"), uuid.New(), uuid.New(), time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
	}{
		{"noSession", func(r *http.Request) {}, http.StatusUnauthorized},
		{"adminCookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: admin}) }, http.StatusOK},
		{"adminBearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+admin) }, http.StatusOK},
		{"customer", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: customer}) }, http.StatusForbidden},
		{"expiredSession", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: expired}) }, http.StatusUnauthorized},
		{"deletedSession", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: orphan}) }, http.StatusUnauthorized},
		{"forgedToken", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged) }, http.StatusUnauthorized},
		{"malformedHeader", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	store := newFakeSessions()
	auth := NewAuthenticator(store, testSecret)
	token := store.login(t, models.RoleCustomer, time.Now().Add(time.Hour))

	var seen *Identity
	handler := auth.AuthMiddleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetAuthenticatedUser(r)
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen == nil || seen.User.Role != models.RoleCustomer {
		t.Fatalf("identity not attached: %+v", seen)
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tables", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"message\":\"Internal server error\"}\n" {
		t.Errorf("body = %q", body)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
}
