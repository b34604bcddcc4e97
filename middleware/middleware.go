package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"courtside/globals"
	"courtside/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

var jwtSecret []byte

// Init sets the signing secret. Called once from main after config load.
func Init(secret string) {
	jwtSecret = []byte(secret)
}

func Secret() []byte { return jwtSecret }

// JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's user id and role in the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(tokenString, "Bearer ") {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}
		raw := tokenString[7:]

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// Tokens invalidated by logout live in Redis until they expire.
		// Fail closed: if the revocation list is unreachable we cannot
		// tell a live token from a logged-out one.
		revoked, err := rdx.Exists(r.Context(), "revoked:"+raw)
		if err != nil {
			log.Printf("token revocation check failed: %v", err)
			http.Error(w, "Unable to verify token", http.StatusServiceUnavailable)
			return
		}
		if revoked {
			http.Error(w, "Token revoked", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin chains on Authenticate and rejects non-admin callers.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role, _ := r.Context().Value(globals.RoleKey).(string)
		if role != "Admin" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	})
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || !strings.HasPrefix(tokenString, "Bearer ") {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}
