// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package middleware is the cross-cutting chain every request passes
through before reaching a domain handler.

Each middleware wraps the standard http.Handler and layers one concern
onto the request lifecycle.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: Structured activity logging (slog).
  - Guard: Per-IP rate limiting and CORS validation.
  - Safe: Panic recovery so one bad request cannot take the process down.

Domain handlers stay free of infrastructure concerns; by the time a
request reaches them it is traced, logged, and rate-checked.
*/
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/agrioindia/platform/internal/platform/constants"
	"github.com/agrioindia/platform/internal/platform/ctxutil"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Reuse the caller's ID when one is forwarded by a proxy
			requestID := request.Header.Get(constants.HeaderXRequestID)

			// 2. Otherwise mint a UUIDv7 so IDs sort by arrival time
			if requestID == "" {
				uuidV7, err := uuid.NewV7()
				if err != nil {
					requestID = uuid.New().String()
				} else {
					requestID = uuidV7.String()
				}
			}

			// 3. Make it visible to both the app and the client
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Activity Logging

type statusTracker struct {
	http.ResponseWriter
	status int
}

func (tracker *statusTracker) WriteHeader(code int) {
	tracker.status = code
	tracker.ResponseWriter.WriteHeader(code)
}

// StructuredLogger emits one log line per finished request and plants a
// request-scoped sub-logger into the context for handlers to pick up.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()
			rid := ctxutil.GetRequestID(request.Context())
			ip := RealIP(request)

			// 1. Every downstream log line carries these attributes
			requestLogger := logger.With(
				slog.String("request_id", rid),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", ip),
			)

			// 2. Hand the sub-logger to handlers via context
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			tracked := &statusTracker{ResponseWriter: writer, status: http.StatusOK}

			// 3. Run the rest of the chain
			next.ServeHTTP(tracked, request.WithContext(ctx))

			// 4. Summary line once the response is written
			latency := time.Since(startTime).Milliseconds()
			logLevel := slog.LevelInfo

			if tracked.status >= 500 {
				logLevel = slog.LevelError
			} else if tracked.status >= 400 {
				logLevel = slog.LevelWarn
			}

			completionAttrs := []any{
				slog.Int("status", tracked.status),
				slog.Int64("latency_ms", latency),
				slog.String("user_agent", request.UserAgent()),
			}

			// Authenticated requests also record who made them
			if claims := ctxutil.GetAuthUser(ctx); claims != nil {
				completionAttrs = append(completionAttrs, slog.String("user_id", claims.UserID))
			}

			requestLogger.Log(ctx, logLevel, "http_request_finished", completionAttrs...)
		})
	}
}

// # Rate Limiting

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitorsMu sync.Mutex
	visitors   = make(map[string]*visitor)
)

// RateLimit applies a token bucket per client IP. This is the blanket
// limit; OTP sends and coupon scans carry stricter Redis-backed limits
// of their own.
func RateLimit(appCtx context.Context) func(http.Handler) http.Handler {

	// Evict idle visitors in the background until shutdown.
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				visitorsMu.Lock()
				for ip, seen := range visitors {
					if time.Since(seen.lastSeen) > constants.RateLimitClientTTL {
						delete(visitors, ip)
					}
				}
				visitorsMu.Unlock()
			case <-appCtx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			clientIP := RealIP(request)

			visitorsMu.Lock()
			seen, found := visitors[clientIP]

			// First request from this IP gets a fresh bucket
			if !found {
				seen = &visitor{
					limiter: rate.NewLimiter(
						rate.Limit(constants.DefaultRateLimitRPS),
						constants.DefaultRateLimitBurst,
					),
				}
				visitors[clientIP] = seen
			}

			seen.lastSeen = time.Now()

			if !seen.limiter.Allow() {
				visitorsMu.Unlock()
				writeError(writer, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}
			visitorsMu.Unlock()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability & Safety

// PanicRecovery converts a handler panic into a logged 500 response.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			defer func() {
				if err := recover(); err != nil {

					// Grab the goroutine's stack for the log entry
					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					reqLogger := ctxutil.GetLogger(request.Context())

					reqLogger.ErrorContext(request.Context(), "panic_recovered",
						slog.Any("error", err),
						slog.String("stack", string(stackTrace[:length])),
					)

					// The client sees a generic failure, never the panic value
					writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
				}
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
	AllowedExtraOrigins() []string
}

// CORS allows any origin in development. In production only
// agrioindia.in subdomains plus explicitly configured extras pass.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Same-origin and non-browser traffic has no Origin header
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			isAllowed := false
			if cfg.IsDevelopment() {
				isAllowed = true
			} else if strings.HasSuffix(origin, "agrioindia.in") {
				isAllowed = true
			} else {
				for _, extra := range cfg.AllowedExtraOrigins() {
					if origin == extra {
						isAllowed = true
						break
					}
				}
			}

			if isAllowed {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			// Preflight stops here
			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP extracts the client IP, trusting common proxy headers over the
// socket address.
func RealIP(request *http.Request) string {

	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}

// writeError emits the standard error envelope. Middleware writes it
// directly rather than going through respond, which expects an apperr.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{
		"success": false,
		constants.FieldError: map[string]string{
			constants.FieldMessage: message,
			constants.FieldCode:    code,
		},
	})
}
