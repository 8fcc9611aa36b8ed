// Copyright (c) 2026 Agrio India. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/ctxkey"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/internal/platform/sec"
)

// TokenVerifier is the slice of [sec.TokenService] the middleware needs.
//
// # Why an interface?
//
// Auth routes and catalog routes share this middleware; taking an
// interface lets tests swap in a stub verifier without standing up the
// RSA key pair.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate verifies a Bearer token when one is present.
//
// # Flow
//  1. No Authorization header: the request continues as anonymous.
//     Public catalog routes rely on this.
//  2. A malformed header or a bad token is rejected outright; we never
//     silently downgrade a failed token to anonymous.
//  3. Verified claims land in the context for handlers and RequireAuth.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
//
// # Usage
//
// Mount AFTER [Authenticate]; it only reads what Authenticate stored.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if GetUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole rejects callers below the given role. Admin dashboard
// routes mount this with [sec.RoleAdmin].
//
// # Usage
//
// Mount AFTER [Authenticate]. RequireRole already covers the
// authentication check, so pairing it with [RequireAuth] is redundant.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser returns the verified [*sec.AuthClaims] for the request, or nil
// when the caller is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
