// Copyright (c) 2026 Agrio India. All rights reserved.

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/database/schema"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/users/auth"
	"github.com/agrioindia/platform/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindAccountByEmail returns the staff account with the given email.

Description: Only rows with a staff role qualify; a farmer with a stray email
can never resolve as a back-office account.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated entity including the password hash
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindAccountByEmail(context context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT id, email, fullname, passwordhash, role, isactive, lastloginat, createdat
		FROM %s
		WHERE email = $1 AND role IN ($2, $3) AND deletedat IS NULL`,
		schema.UserAccount.Table,
	)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, email, sec.RoleAdmin, sec.RoleSuperAdmin).Scan(
		&account.ID,
		&account.Email,
		&account.FullName,
		&account.PasswordHash,
		&account.Role,
		&account.IsActive,
		&account.LastLoginAt,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account not found")
		}
		return nil, fmt.Errorf("postgres_admin_repo_find_by_email_failed: %w", err)
	}

	return account, nil
}

/*
TouchLastLogin stamps the account's lastloginat with the current time.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) TouchLastLogin(context context.Context, accountID string) error {
	query := fmt.Sprintf(`UPDATE %s SET lastloginat = $2 WHERE id = $1`, schema.UserAccount.Table)

	if _, err := repository.pool.Exec(context, query, accountID, time.Now()); err != nil {
		return fmt.Errorf("postgres_admin_repo_touch_last_login_failed: %w", err)
	}

	return nil
}

/*
Stats aggregates platform-wide dashboard numbers.

Parameters:
  - context: context.Context

Returns:
  - *PlatformStats: Dashboard summary
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Stats(context context.Context) (*PlatformStats, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE role = $1 AND deletedat IS NULL),
			(SELECT COUNT(*) FROM %s WHERE role = $1 AND deletedat IS NULL AND createdat >= $2),
			(SELECT COUNT(*) FROM %s),
			(SELECT COALESCE(SUM(points), 0) FROM %s),
			(SELECT COUNT(*) FROM %s)`,
		schema.UserAccount.Table,
		schema.UserAccount.Table,
		schema.RewardEntry.Table,
		schema.RewardEntry.Table,
		schema.UserContactMessage.Table,
	)

	stats := &PlatformStats{}
	err := repository.pool.QueryRow(context, query, sec.RoleFarmer, time.Now().Add(-NewUserWindow)).Scan(
		&stats.TotalUsers,
		&stats.NewUsers30d,
		&stats.TotalScans,
		&stats.TotalPoints,
		&stats.ContactMessages,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_stats_failed: %w", err)
	}

	return stats, nil
}

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
func (repository *PostgresRepository) ListUsers(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE role = $1 AND deletedat IS NULL`,
		schema.UserAccount.Table)
	if err := repository.pool.QueryRow(context, countQuery, sec.RoleFarmer).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_count_users_failed: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, mobile, fullname, email, pincode, state, district, language, role,
		       isactive, lastloginat, createdat, updatedat
		FROM %s
		WHERE role = $1 AND deletedat IS NULL
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`,
		schema.UserAccount.Table,
	)

	rows, err := repository.pool.Query(context, pageQuery, sec.RoleFarmer, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_list_users_failed: %w", err)
	}
	defer rows.Close()

	users := []*auth.User{}
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID,
			&user.Mobile,
			&user.FullName,
			&user.Email,
			&user.PinCode,
			&user.State,
			&user.District,
			&user.Language,
			&user.Role,
			&user.IsActive,
			&user.LastLoginAt,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_admin_repo_scan_user_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_users_rows_failed: %w", err)
	}

	return users, total, nil
}
