package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
)

func newTestRouter(health HealthChecker) http.Handler {
	return NewRouter(Config{
		TrustUserHeader: true,
		Logger:          zap.NewNop(),
		Health:          health,
		JWTManager:      auth.NewJWTManager("secret", time.Minute),
	})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(newTestRouter(func(context.Context) error { return nil }), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(newTestRouter(func(context.Context) error { return errors.New("down") }), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil)
	get(r, "/healthz")

	w := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shareit_http_request_duration_seconds")
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	r := newTestRouter(nil)
	for _, path := range []string{"/v1/bookings", "/v1/bookings/owner", "/v1/items", "/v1/requests", "/v1/me", "/v1/users"} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, ,https://b.example"))
	assert.Nil(t, splitOrigins(""))
}
