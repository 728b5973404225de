package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"

	"github.com/georgemunganga/vendor-api/internal/platform/httpx"
)

// ErrSecretUnset is returned when a token arrives but no verification
// secret is configured. Verification fails closed.
var ErrSecretUnset = errors.New("token verification secret is not configured")

const bearerPrefix = "Bearer "

// Resolver turns an Authorization header into an optional Identity.
//
// Authentication is advisory: a missing, malformed, forged or expired token
// resolves to an anonymous caller and the request carries on. Only internal
// faults are reported as errors.
type Resolver struct {
	secret []byte
	log    *zap.Logger
}

// NewResolver creates a Resolver verifying HS256 tokens signed with secret.
func NewResolver(secret string, log *zap.Logger) *Resolver {
	return &Resolver{secret: []byte(secret), log: log}
}

// Resolve returns the identity carried by header, or nil for anonymous.
func (res *Resolver) Resolve(header string) (*Identity, error) {
	if header == "" {
		return nil, nil
	}
	if len(res.secret) == 0 {
		return nil, ErrSecretUnset
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		res.log.Debug("ignoring non-bearer authorization header")
		return nil, nil
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" {
		return nil, nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return res.secret, nil
	})
	if err != nil || !token.Valid {
		res.log.Debug("ignoring invalid token", zap.Error(err))
		return nil, nil
	}
	if claims.User == nil {
		res.log.Debug("ignoring token without user claim")
		return nil, nil
	}
	return claims.User.identity(), nil
}

// Middleware attaches the resolved identity (or nil) to the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := res.Resolve(r.Header.Get("Authorization"))
		if err != nil {
			res.log.Error("resolve identity", zap.Error(err))
			httpx.Fail(w, http.StatusInternalServerError, "Server Error")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}
