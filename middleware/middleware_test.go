package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtside/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T) string {
	t.Helper()
	claims := &Claims{
		UserID: "u123",
		Name:   "Test User",
		Role:   "Student",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	assert.NoError(t, err)
	return token
}

func TestAuthenticateFailsClosedWhenRevocationListUnreachable(t *testing.T) {
	Init("test-secret")
	// nothing listens on port 1, so the revocation lookup errors
	rdx.Conn = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})

	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, called, "handler must not run when revocation state is unknown")
}

func TestAuthenticateRejectsMissingAndMalformedTokens(t *testing.T) {
	Init("test-secret")

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler(rec, req, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}
