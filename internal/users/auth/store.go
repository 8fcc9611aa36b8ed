// Copyright (c) 2026 Agrio India. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByMobile returns the account registered with the given mobile number.

		Parameters:
		  - context: context.Context
		  - mobile: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByMobile(context context.Context, mobile string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		TouchLastLogin stamps the account's lastloginat with the current time.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, userID string) error

	/*
		CropPreferences returns the crop IDs the user has selected.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []string: Selected crop IDs, oldest first
		  - error: Database retrieval failures
	*/
	CropPreferences(context context.Context, userID string) ([]string, error)

	/*
		ReplaceCropPreferences atomically swaps the user's crop selection.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - cropIDs: []string

		Returns:
		  - error: Persistence failures
	*/
	ReplaceCropPreferences(context context.Context, userID string, cropIDs []string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	/*
		Create persists a new tracking session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke marks a specific session as permanently invalidated.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, sessionID string) error

	/*
		RevokeAll revokes every active session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeAll(context context.Context, userID string) error

	/*
		DeleteExpired physically removes sessions whose ExpiresAt is in the past.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) error
}

// # Volatile Data Access

// OTPRepository defines the contract for storing volatile one-time passwords
// and their abuse counters.
type OTPRepository interface {

	/*
		SetCode stores the active OTP code for a mobile number.

		Parameters:
		  - context: context.Context
		  - mobile: string
		  - code: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	SetCode(context context.Context, mobile, code string, ttl time.Duration) error

	/*
		GetCode retrieves the active OTP code for a mobile number.

		Parameters:
		  - context: context.Context
		  - mobile: string

		Returns:
		  - string: The stored code
		  - error: apperr.NotFound when absent or expired
	*/
	GetCode(context context.Context, mobile string) (string, error)

	/*
		DeleteCode removes the active OTP code after use or invalidation.

		Parameters:
		  - context: context.Context
		  - mobile: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteCode(context context.Context, mobile string) error

	/*
		IncrementSends bumps the rolling send counter for a mobile number.

		Parameters:
		  - context: context.Context
		  - mobile: string
		  - window: time.Duration

		Returns:
		  - int64: The counter value after the increment
		  - error: Persistence failures
	*/
	IncrementSends(context context.Context, mobile string, window time.Duration) (int64, error)

	/*
		IncrementAttempts bumps the verification attempt counter for the
		active code.

		Parameters:
		  - context: context.Context
		  - mobile: string
		  - ttl: time.Duration

		Returns:
		  - int64: The counter value after the increment
		  - error: Persistence failures
	*/
	IncrementAttempts(context context.Context, mobile string, ttl time.Duration) (int64, error)

	/*
		ClearAttempts resets the verification attempt counter.

		Parameters:
		  - context: context.Context
		  - mobile: string

		Returns:
		  - error: Persistence failures
	*/
	ClearAttempts(context context.Context, mobile string) error
}
