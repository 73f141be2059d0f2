// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-hub/auth"
	"github.com/danielhkuo/feedback-hub/models"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user
func WithIdentity(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, identityKey{}, claims)
}

// IdentityFromContext returns the user attached by RequireAuth
func IdentityFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(identityKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

// RequireAuth rejects requests without a valid bearer token and attaches
// the decoded identity to the request context
func RequireAuth(secret []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Missing token")
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				slog.Debug("token rejected", "error", err, "path", r.URL.Path)
				ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next(w, r.WithContext(WithIdentity(r.Context(), claims)))
		}
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := IdentityFromContext(r.Context())
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Missing token")
			return
		}
		if claims.Role != models.RoleAdmin {
			ErrorResponse(w, http.StatusForbidden, "Admin only")
			return
		}
		next(w, r)
	}
}
