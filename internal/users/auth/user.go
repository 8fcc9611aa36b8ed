// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package auth implements the farmer identity and session management layer.

It defines the core domain entities (User, Session) and logic for the mobile
OTP authentication flow, profile management, and crop preferences.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/agrioindia/platform/internal/platform/sec"
)

// # Domain Entities

// User represents a registered farmer (or staff member) on the Agrio platform.
type User struct {
	ID              string       `json:"id"`
	Mobile          string       `json:"mobile"`
	FullName        string       `json:"full_name"`
	Email           string       `json:"email,omitempty"`
	PinCode         string       `json:"pin_code,omitempty"`
	State           string       `json:"state,omitempty"`
	District        string       `json:"district,omitempty"`
	Language        string       `json:"language"`
	Role            sec.UserRole `json:"role"`
	IsActive        bool         `json:"is_active"`
	CropPreferences []string     `json:"crop_preferences,omitempty"`
	LastLoginAt     *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldMobile       = "mobile"
	FieldOTP          = "otp"
	FieldRefreshToken = "refresh_token"
	FieldFullName     = "full_name"
	FieldEmail        = "email"
	FieldPinCode      = "pin_code"
	FieldState        = "state"
	FieldDistrict     = "district"
	FieldLanguage     = "language"
	FieldCrops        = "crops"
	FieldAccessToken  = "access_token"
	FieldIsNewUser    = "is_new_user"
	FieldUser         = "user"
)
