// Copyright (c) 2026 Agrio India. All rights reserved.

package admin

import (
	"context"

	"github.com/agrioindia/platform/internal/users/auth"
	"github.com/agrioindia/platform/pkg/pagination"
)

// Repository defines the data access contract for the back office.
type Repository interface {

	/*
		FindAccountByEmail returns the staff account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity including the password hash
		  - error: apperr.NotFound or database errors
	*/
	FindAccountByEmail(context context.Context, email string) (*Account, error)

	/*
		TouchLastLogin stamps the account's lastloginat with the current time.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, accountID string) error

	/*
		Stats aggregates platform-wide dashboard numbers.

		Parameters:
		  - context: context.Context

		Returns:
		  - *PlatformStats: Dashboard summary
		  - error: Database retrieval failures
	*/
	Stats(context context.Context) (*PlatformStats, error)

	/*
		ListUsers returns one page of farmer accounts, newest first.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*auth.User: One page of accounts
		  - int: Total accounts across all pages
		  - error: Database retrieval failures
	*/
	ListUsers(context context.Context, params pagination.Params) ([]*auth.User, int, error)
}
