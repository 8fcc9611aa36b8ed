// Copyright (c) 2026 Agrio India. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// OTPCodeDigits is the number of digits in a one-time password.
	OTPCodeDigits = 4

	// OTPCodeTTL is the duration an OTP code remains valid after being sent.
	OTPCodeTTL = 5 * time.Minute

	// OTPSendLimit is the maximum number of OTP sends per mobile number
	// within one OTPSendWindow.
	OTPSendLimit = 3

	// OTPSendWindow is the rolling window over which OTPSendLimit applies.
	OTPSendWindow = 10 * time.Minute

	// OTPAttemptLimit is the maximum number of verification attempts per code.
	// Exceeding it invalidates the code and forces a new send.
	OTPAttemptLimit = 5

	// DefaultLanguage is assigned to brand-new accounts until the user picks one.
	DefaultLanguage = "en"
)
