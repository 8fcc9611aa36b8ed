// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package apperr is the single error vocabulary of the Agrio API.

Services and repositories return [*AppError] (or wrap their cause in
one); the respond package turns it into the HTTP error envelope. Client
applications key their behavior off the Code field, so codes are part
of the public contract and must stay stable.

Architecture:

  - AppError: machine-readable Code plus a client-safe Message.
  - Mapping: each constructor fixes the HTTP status for its code.
  - Details: field-level validation errors ride along on 400s.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Agrio API.
//
// # Security
//
// Cause is for server-side logging only and is never serialized, so
// internals like SQL text cannot leak into a response.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "OTP_EXPIRED").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Product") // Returns "Product not found"
func NotFound(resource string) *AppError {
	return newError("NOT_FOUND", http.StatusNotFound, resource+" not found")
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return newError("UNAUTHORIZED", http.StatusUnauthorized, msg)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return newError("FORBIDDEN", http.StatusForbidden, msg)
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return newError("CONFLICT", http.StatusConflict, msg)
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appErr := newError("VALIDATION_ERROR", http.StatusBadRequest, msg)
	appErr.Details = details
	return appErr
}

// RateLimited creates a 429 [AppError].
//
// The message deliberately contains the words "too many" so that legacy
// clients classifying errors by substring keep recognizing it.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError("RATE_LIMITED", http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(msg string) *AppError {
	return newError("UNPROCESSABLE", http.StatusUnprocessableEntity, msg)
}

// # OTP Errors

// OTPExpired creates a 401 [AppError] with the OTP_EXPIRED code.
func OTPExpired() *AppError {
	return newError("OTP_EXPIRED", http.StatusUnauthorized, "The OTP has expired. Please request a new one.")
}

// OTPInvalid creates a 401 [AppError] with the OTP_INVALID code.
func OTPInvalid() *AppError {
	return newError("OTP_INVALID", http.StatusUnauthorized, "The OTP you entered is incorrect.")
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	appErr := newError("INTERNAL_ERROR", http.StatusInternalServerError, "An unexpected error occurred")
	appErr.Cause = cause
	return appErr
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return newError("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, msg)
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
