// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package auth provides the HTTP delivery layer for farmer identity management.

It implements the gateway for the OTP authentication lifecycle, from code
request to session refresh and profile completion.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration and refresh token rotation.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agrioindia/platform/internal/platform/middleware"
	requestutil "github.com/agrioindia/platform/internal/platform/request"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/internal/platform/validate"
	"github.com/agrioindia/platform/pkg/slice"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the farmer lifecycle entry points
// (OTP send/verify, session refresh, profile, crop preferences).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /send-otp   : Generates and delivers a one-time password.
//   - POST /verify-otp : Exchanges mobile+code for a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/send-otp", handler.sendOTP)
	router.Post("/verify-otp", handler.verifyOTP)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", handler.profile)
		r.Put("/profile", handler.updateProfile)
		r.Get("/crop-preferences", handler.cropPreferences)
		r.Put("/crop-preferences", handler.syncCropPreferences)
	})

	return router
}

// # Request Payloads

type sendOTPRequest struct {
	Mobile string `json:"mobile"`
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	PinCode  string `json:"pin_code"`
	State    string `json:"state"`
	District string `json:"district"`
	Language string `json:"language"`
}

type syncCropsRequest struct {
	Crops []string `json:"crops"`
}

/*
SendOTP generates and delivers a one-time password.

POST /api/v1/auth/send-otp

Description: Validates the mobile number and triggers code generation. The
response body carries no data; success only means the code is on its way.

Request:
  - Body: sendOTPRequest (Mobile)

Response:
  - 200: Empty data object
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 429: RATE_LIMITED: Send window exhausted
*/
func (handler *Handler) sendOTP(writer http.ResponseWriter, request *http.Request) {
	var input sendOTPRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMobile, input.Mobile).
		Mobile(FieldMobile, input.Mobile)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.SendOTP(request.Context(), input.Mobile); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldMobile: input.Mobile})
}

/*
VerifyOTP exchanges a mobile number and code for a session.

POST /api/v1/auth/verify-otp

Description: Validates the code, provisions a new account on first login, and
returns a rotated token pair alongside the user profile.

Request:
  - Body: verifyOTPRequest (Mobile, OTP)

Response:
  - 200: Session: Access token, refresh token, IsNewUser flag, User profile
  - 401: OTP_EXPIRED / OTP_INVALID: Verification failures
  - 429: RATE_LIMITED: Attempt budget exhausted
*/
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	var input verifyOTPRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMobile, input.Mobile).
		Mobile(FieldMobile, input.Mobile).
		Required(FieldOTP, input.OTP).
		Digits(FieldOTP, input.OTP, OTPCodeDigits)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.VerifyOTP(request.Context(), VerifyInput{
		Mobile:    input.Mobile,
		Code:      input.OTP,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldIsNewUser:    session.IsNewUser,
		FieldUser:         session.User,
	})
}

/*
Refresh rotates an active session's token pair.

POST /api/v1/auth/refresh

Description: Revokes the presented refresh token and issues a new pair.

Request:
  - Body: refreshRequest (RefreshToken)

Response:
  - 200: Session: New access and refresh tokens
  - 401: ErrUnauthorized: Token invalid, expired, or already rotated
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, input.RefreshToken)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.RefreshSession(
		request.Context(),
		input.RefreshToken,
		request.UserAgent(),
		middleware.RealIP(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldUser:         session.User,
	})
}

/*
Logout terminates the presented session.

POST /api/v1/auth/logout

Description: Revokes the refresh token if it is still alive. Unknown tokens
still return success, so a client can always clear its local state.

Request:
  - Body: logoutRequest (RefreshToken, optional)

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input logoutRequest

	// Body is optional: a client that lost its token can still log out
	_ = requestutil.DecodeJSON(request, &input)

	if input.RefreshToken != "" {
		if err := handler.authService.Logout(request.Context(), input.RefreshToken); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.NoContent(writer)
}

/*
Profile returns the authenticated user's account.

GET /api/v1/auth/profile

Response:
  - 200: User: Hydrated profile including crop preferences
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile applies the submitted profile fields to the account.

PUT /api/v1/auth/profile

Request:
  - Body: updateProfileRequest (FullName, Email, PinCode, State, District, Language)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		MinLen(FieldFullName, input.FullName, 2).
		MaxLen(FieldFullName, input.FullName, 100).
		Required(FieldPinCode, input.PinCode).
		Pincode(FieldPinCode, input.PinCode)

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.Language != "" {
		validator.OneOf(FieldLanguage, input.Language, "en", "hi")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), userID, ProfileInput{
		FullName: input.FullName,
		Email:    input.Email,
		PinCode:  input.PinCode,
		State:    input.State,
		District: input.District,
		Language: input.Language,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
CropPreferences returns the authenticated user's crop selection.

GET /api/v1/auth/crop-preferences

Response:
  - 200: []string: Selected crop IDs
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) cropPreferences(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cropIDs, err := handler.authService.CropPreferences(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldCrops: cropIDs})
}

/*
SyncCropPreferences replaces the authenticated user's crop selection.

PUT /api/v1/auth/crop-preferences

Request:
  - Body: syncCropsRequest (Crops)

Response:
  - 200: []string: The stored crop IDs
  - 400: ErrInvalidJSON: Bad input
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) syncCropPreferences(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input syncCropsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Drop blank entries before they reach storage.
	crops := slice.Filter(slice.Map(input.Crops, strings.TrimSpace), func(id string) bool {
		return id != ""
	})

	if err := handler.authService.SyncCropPreferences(request.Context(), userID, crops); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldCrops: crops})
}
