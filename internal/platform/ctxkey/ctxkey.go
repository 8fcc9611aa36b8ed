// Copyright (c) 2026 Agrio India. All rights reserved.

// Package ctxkey holds the typed context keys shared between middleware
// and handlers.
//
// # Safety
//
// Per-request values (farmer identity, request ID, logger) travel through
// [context.Context]. Keys use an unexported type so no other package can
// produce a colliding key, even with the same string value.
package ctxkey

// key is unexported on purpose: [context.Context] lookups compare both
// value and type, so outside packages cannot construct a matching key.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated user claim ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
