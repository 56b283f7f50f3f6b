package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/koyif/invoicedash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-private-key"

func signedToken(t *testing.T, subject string) string {
	t.Helper()

	claims := jwt.StandardClaims{
		Subject:   subject,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	return token
}

func gated(next http.Handler) http.Handler {
	cfg := &config.Config{PrivateKey: testKey}
	return WithAuth(cfg)(next)
}

func TestAnonymousDashboardRequestRedirectsToLogin(t *testing.T) {
	nextCalled := false
	h := gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, nextCalled)
}

func TestLoggedInPublicRequestRedirectsToDashboard(t *testing.T) {
	nextCalled := false
	h := gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signedToken(t, "42")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.False(t, nextCalled)
}

func TestLoggedInDashboardRequestPassesUserID(t *testing.T) {
	var userID string
	h := gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = r.Header.Get("User-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signedToken(t, "42")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", userID)
}

func TestBearerHeaderAlsoCarriesSession(t *testing.T) {
	var userID string
	h := gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = r.Header.Get("User-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "7"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", userID)
}

func TestExpiredTokenIsAnonymous(t *testing.T) {
	claims := jwt.StandardClaims{
		Subject:   "42",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	h := gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAnonymousPublicRequestIsAllowed(t *testing.T) {
	nextCalled := false
	h := gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, nextCalled)
}
