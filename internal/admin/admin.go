// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package admin implements the back-office surface of the platform.

Staff accounts authenticate with email and password (unlike farmers, who use
OTP) and get read access to platform-wide statistics and the farmer directory.
*/
package admin

import (
	"time"

	"github.com/agrioindia/platform/internal/platform/sec"
)

// # Domain Entities

// Account is a staff account able to access the back office.
type Account struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// PlatformStats is the back-office dashboard summary.
type PlatformStats struct {
	TotalUsers      int `json:"total_users"`
	NewUsers30d     int `json:"new_users_30d"`
	TotalScans      int `json:"total_scans"`
	TotalPoints     int `json:"total_points"`
	ContactMessages int `json:"contact_messages"`
}

// # Constraints

const (
	// AccessTokenTTL keeps staff sessions shorter than farmer sessions.
	AccessTokenTTL = 12 * time.Hour

	// NewUserWindow is the lookback used for the dashboard's new-user count.
	NewUserWindow = 30 * 24 * time.Hour
)

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldAdmin       = "admin"
)
