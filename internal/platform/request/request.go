// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package requestutil pulls typed data out of incoming HTTP requests.

Handlers go through these helpers instead of touching chi or the
context keys directly, so the error shape for a bad body or a missing
login is the same on every route.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/ctxutil"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/platform/validate"
)

/*
DecodeJSON decodes the request body into target.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param returns the named URL path parameter.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims returns the caller's verified claims, or nil for anonymous
requests on optionally-authenticated routes.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims returns the caller's claims on routes where login is
mandatory.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID is RequiredClaims reduced to the user's UUID, for
handlers that only need the identity.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
