// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package auth implements the core identity system for the Agrio platform.

It handles the mobile OTP login flow end to end: code generation and delivery,
abuse counters, account auto-provisioning on first login, and session lifecycle
management via JWT and Refresh tokens.

Architecture:

  - Service: Orchestrates business logic (SendOTP, VerifyOTP, Profile).
  - Repository: Abstracted interfaces for Postgres (Users, Sessions) and Redis (OTP codes).
  - Security: Leverages RSA-signed JWTs and SHA-256 hashed refresh tokens.

The package ensures that identity data remains consistent and secure throughout
the platform’s lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - mobile: The mobile number of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, mobile, role string, timeToLive time.Duration) (string, error)
}

// OTPSender delivers a generated code to the farmer's handset.
//
// # Why an interface?
//
// There is no SMS gateway contract signed yet, so the only production
// implementation is [LogOTPSender]. The interface keeps the gateway swap a
// one-line change in main.
type OTPSender interface {
	Send(context context.Context, mobile, code string) error
}

// LogOTPSender writes generated codes to the structured log instead of SMS.
type LogOTPSender struct {
	Logger *slog.Logger
}

// Send logs the code against the masked mobile number.
func (sender *LogOTPSender) Send(context context.Context, mobile, code string) error {
	sender.Logger.InfoContext(context, "otp_generated",
		slog.String("mobile", MaskMobile(mobile)),
		slog.String("code", code),
	)
	return nil
}

// Service implements the OTP authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation,
// counter limits, or session logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	otpRepository     OTPRepository
	tokenProvider     TokenProvider
	otpSender         OTPSender
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	otpRepo OTPRepository,
	tokenProv TokenProvider,
	otpSender OTPSender,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		otpRepository:     otpRepo,
		tokenProvider:     tokenProv,
		otpSender:         otpSender,
	}
}

// # OTP Flow

/*
SendOTP generates a fresh code for the mobile number and hands it to the sender.

Description: Enforces the per-number send limit before generating. A new send
always replaces the previous code and resets the attempt counter, so only one
code is live per number at any time.

Parameters:
  - context: context.Context
  - mobile: string (10-digit Indian mobile number)

Returns:
  - err: RateLimited when the send window is exhausted, or storage errors
*/
func (service *Service) SendOTP(context context.Context, mobile string) error {

	// Enforce the rolling send limit first so abusers never trigger generation
	sendCount, err := service.otpRepository.IncrementSends(context, mobile, OTPSendWindow)
	if err != nil {
		return fmt.Errorf("auth_service_send_counter_failed: %w", err)
	}

	if sendCount > OTPSendLimit {
		return apperr.RateLimited(int(OTPSendWindow.Seconds()))
	}

	// Generate the numeric code
	code, err := sec.GenerateOTPCode(OTPCodeDigits)
	if err != nil {
		return fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	// Store it, replacing any previous live code for this number
	if err := service.otpRepository.SetCode(context, mobile, code, OTPCodeTTL); err != nil {
		return fmt.Errorf("auth_service_store_code_failed: %w", err)
	}

	// A fresh code gets a fresh attempt budget
	_ = service.otpRepository.ClearAttempts(context, mobile)

	// Deliver the code
	if err := service.otpSender.Send(context, mobile, code); err != nil {
		return fmt.Errorf("auth_service_deliver_code_failed: %w", err)
	}

	return nil
}

// VerifyInput defines the data for an OTP verification attempt.
type VerifyInput struct {
	Mobile    string
	Code      string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	IsNewUser             bool
	User                  *User
}

/*
VerifyOTP checks the submitted code and establishes a session on success.

Description: Burns one verification attempt per call. Exceeding the attempt
budget invalidates the live code, forcing a new send. A first-time mobile
number gets an account provisioned on the spot, flagged via IsNewUser so the
caller can route the farmer into profile completion.

Parameters:
  - context: context.Context
  - input: VerifyInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: OTPExpired, OTPInvalid, RateLimited, or internal failures
*/
func (service *Service) VerifyOTP(context context.Context, input VerifyInput) (*LoginSession, error) {

	// Look up the live code. Absence means expiry (or never sent), which the
	// caller cannot distinguish and does not need to.
	storedCode, err := service.otpRepository.GetCode(context, input.Mobile)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_lookup_code_failed: %w", err)
	}

	// Burn an attempt before comparing so a flood of wrong guesses cannot
	// brute-force the code space
	attemptCount, err := service.otpRepository.IncrementAttempts(context, input.Mobile, OTPCodeTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_attempt_counter_failed: %w", err)
	}

	if attemptCount > OTPAttemptLimit {
		_ = service.otpRepository.DeleteCode(context, input.Mobile)
		return nil, apperr.RateLimited(int(OTPCodeTTL.Seconds()))
	}

	if storedCode != input.Code {
		return nil, apperr.OTPInvalid()
	}

	// Success: the code is single-use
	_ = service.otpRepository.DeleteCode(context, input.Mobile)
	_ = service.otpRepository.ClearAttempts(context, input.Mobile)

	// Resolve or provision the account
	isNewUser := false
	user, err := service.userRepository.FindByMobile(context, input.Mobile)
	if err != nil {
		if !apperr.IsAppError(err) {
			return nil, fmt.Errorf("auth_service_find_user_failed: %w", err)
		}

		// First login for this number. Time-sortable ID to prevent PG index fragmentation.
		user = &User{
			ID:       uuid.New(),
			Mobile:   input.Mobile,
			Language: DefaultLanguage,
			Role:     sec.RoleFarmer,
			IsActive: true,
		}
		if err := service.userRepository.Create(context, user); err != nil {
			return nil, fmt.Errorf("auth_service_provision_user_failed: %w", err)
		}
		isNewUser = true
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is suspended")
	}

	session, err := service.establishSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}
	session.IsNewUser = isNewUser

	_ = service.userRepository.TouchLastLogin(context, user.ID)

	return session, nil
}

// establishSession issues a token pair and persists the tracking session.
func (service *Service) establishSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Mobile, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Create and persist the tracking session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	// Hash the incoming refresh token to look it up
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is suspended")
	}

	return service.establishSession(context, user, userAgent, ipAddress)
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.
Unknown or already-revoked tokens are treated as success (idempotent operation).

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Hash the refresh token
	tokenHash := sec.HashToken(refreshToken)

	// Find the session by token hash
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) session is already gone or invalid, we consider logout successful (idempotent operation).
	if err != nil {
		return nil
	}

	// If (err == nil) Revoke the session
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Profile Management

// ProfileInput holds the mutable profile fields a farmer can edit.
type ProfileInput struct {
	FullName string
	Email    string
	PinCode  string
	State    string
	District string
	Language string
}

/*
Profile returns the user's account hydrated with their crop selection.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity including CropPreferences
  - err: NotFound or storage failures
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	cropIDs, err := service.userRepository.CropPreferences(context, userID)
	if err != nil {
		return nil, err
	}
	user.CropPreferences = cropIDs

	return user, nil
}

/*
UpdateProfile applies the submitted profile fields to the account.

Description: When the caller leaves State blank, it is resolved from the PIN
code's postal zone so the farmer never has to know their postal geography.

Parameters:
  - context: context.Context
  - userID: string
  - input: ProfileInput

Returns:
  - *User: The updated entity
  - err: NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.PinCode = input.PinCode
	user.District = input.District

	user.State = input.State
	if user.State == "" {
		user.State = ResolveState(input.PinCode)
	}

	if input.Language != "" {
		user.Language = input.Language
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
CropPreferences returns the crop IDs the user has selected.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []string: Selected crop IDs
  - err: Storage failures
*/
func (service *Service) CropPreferences(context context.Context, userID string) ([]string, error) {
	return service.userRepository.CropPreferences(context, userID)
}

/*
SyncCropPreferences replaces the user's crop selection wholesale.

Description: The submitted list is the full desired state, not a delta.

Parameters:
  - context: context.Context
  - userID: string
  - cropIDs: []string

Returns:
  - err: Storage failures
*/
func (service *Service) SyncCropPreferences(context context.Context, userID string, cropIDs []string) error {
	if err := service.userRepository.ReplaceCropPreferences(context, userID, cropIDs); err != nil {
		return err
	}
	return nil
}

// # Helpers

// MaskMobile hides all but the last four digits of a mobile number for logs.
func MaskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return strings.Repeat("*", len(mobile)-4) + mobile[len(mobile)-4:]
}
