// Package auth protects the block administration endpoints with HS256 JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tk-labels/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role claim required by RequireAdmin.
const RoleAdmin = "admin"

type ctxKey string

const ctxUser ctxKey = "user"

// UserFromContext returns the subject of the validated token, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(ctxUser).(string)
	return user, ok
}

// RequireAdmin is an authorization middleware that accepts only requests carrying a valid
// Bearer token signed with secret whose role claim is "admin".
//
// Responses:
//   - 401 when the token is missing, malformed, expired or signed with another key
//   - 403 when the token is valid but the role is not admin
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			user, role, err := validateJWT(r.Header.Get("Authorization"), secret)
			RecordAuthDuration(time.Since(start).Seconds())

			if err != nil {
				RecordAuthRequest("unauthorized")
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			if role != RoleAdmin {
				RecordAuthRequest("forbidden")
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden: admin role required"))
				return
			}

			RecordAuthRequest("success")
			ctx := context.WithValue(r.Context(), ctxUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IssueToken signs a token for sub with the given role that expires after ttl.
func IssueToken(secret []byte, sub, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func validateJWT(authz string, secret []byte) (string, string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", "", errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", "", errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", errors.New("invalid role claim")
	}
	return sub, role, nil
}
