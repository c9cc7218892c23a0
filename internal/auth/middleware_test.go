package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const callerID = "4b1c9a7e-2f1d-4a8e-9c1e-1f0b6f5d2a11"

func newEngine(m *JWTManager, trustHeader bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Identify(m, trustHeader), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	return r
}

func do(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentifyWithBearerToken(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	token, err := m.GenerateAccessToken(callerID)
	require.NoError(t, err)

	w := do(newEngine(m, false), map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, callerID, w.Body.String())
}

func TestIdentifyBearerWinsOverHeader(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	token, err := m.GenerateAccessToken(callerID)
	require.NoError(t, err)

	w := do(newEngine(m, true), map[string]string{
		"Authorization": "Bearer " + token,
		UserIDHeader:    "8d1f3b4c-0000-4000-8000-000000000000",
	})
	assert.Equal(t, callerID, w.Body.String())
}

func TestIdentifyWithTrustedHeader(t *testing.T) {
	w := do(newEngine(nil, true), map[string]string{UserIDHeader: callerID})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, callerID, w.Body.String())
}

func TestIdentifyRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	other := NewJWTManager("other-secret", time.Minute)
	foreign, err := other.GenerateAccessToken(callerID)
	require.NoError(t, err)

	cases := []struct {
		name        string
		trustHeader bool
		headers     map[string]string
		code        int
	}{
		{"no identity", true, nil, http.StatusUnauthorized},
		{"header not trusted", false, map[string]string{UserIDHeader: callerID}, http.StatusUnauthorized},
		{"header not a uuid", true, map[string]string{UserIDHeader: "42"}, http.StatusBadRequest},
		{"malformed authorization", true, map[string]string{"Authorization": "Token abc"}, http.StatusUnauthorized},
		{"foreign signature", true, map[string]string{"Authorization": "Bearer " + foreign}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newEngine(m, tc.trustHeader), tc.headers)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, err := m.GenerateAccessToken(callerID)
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}
