// Copyright (c) 2026 Agrio India. All rights reserved.

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrioindia/platform/internal/platform/ctxutil"
	"github.com/agrioindia/platform/internal/platform/sec"
)

/*
TestContext_RequestID verifies the round trip of a correlation ID and the
empty-string fallback before any middleware has run.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	// 1. A bare context has no correlation ID
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Round trip
	ctx = ctxutil.WithRequestID(ctx, "0196b1c2-req")
	assert.Equal(t, "0196b1c2-req", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the request-scoped logger round trip and that
a bare context falls back to slog.Default rather than nil.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	scoped := slog.New(slog.NewTextHandler(io.Discard, nil))

	// 1. Fallback: never nil
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Round trip
	ctx = ctxutil.WithLogger(ctx, scoped)
	assert.Equal(t, scoped, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies claims storage and the nil result for
anonymous requests.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()

	// 1. Anonymous request carries no claims
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Authenticated request carries them through
	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "farmer-42", Role: "user"})
	claims := ctxutil.GetAuthUser(ctx)

	assert.NotNil(t, claims)
	assert.Equal(t, "farmer-42", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}
