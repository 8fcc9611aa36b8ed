// Copyright (c) 2026 Agrio India. All rights reserved.

package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/users/auth"
	"github.com/agrioindia/platform/pkg/pagination"
	"github.com/agrioindia/platform/pkg/pointer"
)

// Service implements back-office use cases.
type Service struct {
	repository    Repository
	tokenProvider auth.TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, tokenProvider auth.TokenProvider) *Service {
	return &Service{
		repository:    repository,
		tokenProvider: tokenProvider,
	}
}

// StaffSession represents a successfully authenticated staff login.
type StaffSession struct {
	AccessToken string
	Account     *Account
}

/*
Login authenticates a staff account with email and password.

Description: Performs constant-time password comparison via bcrypt. Unknown
emails and wrong passwords share one generic message to prevent enumeration.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *StaffSession: Transport-ready session
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*StaffSession, error) {
	account, err := service.repository.FindAccountByEmail(context, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !account.IsActive {
		return nil, apperr.Forbidden("Account is suspended")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Email, string(account.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("admin_service_token_generation_failed: %w", err)
	}

	_ = service.repository.TouchLastLogin(context, account.ID)
	account.LastLoginAt = pointer.To(time.Now())

	return &StaffSession{
		AccessToken: accessToken,
		Account:     account,
	}, nil
}

/*
Stats aggregates platform-wide dashboard numbers.

Parameters:
  - context: context.Context

Returns:
  - *PlatformStats: Dashboard summary
  - err: Storage failures
*/
func (service *Service) Stats(context context.Context) (*PlatformStats, error) {
	return service.repository.Stats(context)
}

/*
Users returns one page of farmer accounts, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: One page of accounts
  - int: Total accounts
  - err: Storage failures
*/
func (service *Service) Users(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	return service.repository.ListUsers(context, params)
}
