// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package constants collects the fixed values shared across layers, so a
timeout or header name is defined exactly once.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: the JWT issuer claim.
  - Storage: Postgres schema names and the Redis key taxonomy.

Anything configurable per deployment belongs in config, not here.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "agrio-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout bounds reading the full request, body included.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is how long a keep-alive connection may sit idle.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout bounds reading the request headers alone.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for one whole request; the
	// Postgres statement_timeout is derived from it.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the sustained per-IP request rate.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the bucket depth above the sustained rate.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often stale IP buckets are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is the idle time after which an IP bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "agrioindia.in"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
	SchemaUsers   = "users"
	SchemaRewards = "rewards"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixOTPCode     = "auth:otp_code:"
	RedisPrefixOTPSends    = "auth:otp_sends:"
	RedisPrefixOTPAttempts = "auth:otp_attempts:"
)
