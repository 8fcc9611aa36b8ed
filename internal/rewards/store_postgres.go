// Copyright (c) 2026 Agrio India. All rights reserved.

package rewards

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/database/schema"
	"github.com/agrioindia/platform/pkg/pagination"
)

// # Coupon Repository

// PostgresCouponRepository implements the CouponRepository interface using pgx.
type PostgresCouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository creates a new PostgreSQL implementation of the CouponRepository.
func NewCouponRepository(pool *pgxpool.Pool) *PostgresCouponRepository {
	return &PostgresCouponRepository{pool: pool}
}

/*
Redeem atomically burns the coupon matching codeHash for the user.

Description: The redemption is a single conditional UPDATE, so two concurrent
scans of the same code can never both succeed. When the UPDATE matches no row,
a follow-up existence check distinguishes an unknown code from one that was
already redeemed.

Parameters:
  - context: context.Context
  - codeHash: string
  - userID: string

Returns:
  - *Coupon: The burned coupon
  - error: apperr.NotFound, apperr.Conflict, or storage failures
*/
func (repository *PostgresCouponRepository) Redeem(context context.Context, codeHash, userID string) (*Coupon, error) {
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET isredeemed = TRUE, redeemedby = $2, redeemedat = $3
		WHERE codehash = $1 AND isredeemed = FALSE
		RETURNING id, codehash, productid, points, batchno, isredeemed, redeemedby, redeemedat, createdat`,
		schema.RewardCoupon.Table,
	)

	coupon := &Coupon{}
	err := repository.pool.QueryRow(context, updateQuery, codeHash, userID, time.Now()).Scan(
		&coupon.ID,
		&coupon.CodeHash,
		&coupon.ProductID,
		&coupon.Points,
		&coupon.BatchNo,
		&coupon.IsRedeemed,
		&coupon.RedeemedBy,
		&coupon.RedeemedAt,
		&coupon.CreatedAt,
	)
	if err == nil {
		return coupon, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres_coupon_repo_redeem_failed: %w", err)
	}

	// No live coupon matched: unknown code, or someone got there first
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE codehash = $1)`,
		schema.RewardCoupon.Table)

	var exists bool
	if err := repository.pool.QueryRow(context, existsQuery, codeHash).Scan(&exists); err != nil {
		return nil, fmt.Errorf("postgres_coupon_repo_exists_failed: %w", err)
	}

	if exists {
		return nil, apperr.Conflict("This coupon has already been redeemed")
	}

	return nil, apperr.NotFound("Coupon not found")
}

// # Ledger Repository

// PostgresRewardRepository implements the RewardRepository interface using pgx.
type PostgresRewardRepository struct {
	pool *pgxpool.Pool
}

// NewRewardRepository creates a new PostgreSQL implementation of the RewardRepository.
func NewRewardRepository(pool *pgxpool.Pool) *PostgresRewardRepository {
	return &PostgresRewardRepository{pool: pool}
}

/*
Create appends a credit entry to the ledger.

Parameters:
  - context: context.Context
  - reward: *Reward

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRewardRepository) Create(context context.Context, reward *Reward) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, couponid, productid, points, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.RewardEntry.Table,
	)

	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		reward.ID,
		reward.UserID,
		reward.CouponID,
		reward.ProductID,
		reward.Points,
		reward.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_reward_repo_create_failed: %w", err)
	}

	return nil
}

/*
ListByUser returns one page of the user's ledger, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Reward: One page of entries
  - int: Total entries across all pages
  - error: Database retrieval failures
*/
func (repository *PostgresRewardRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]*Reward, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE userid = $1`, schema.RewardEntry.Table)
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_reward_repo_count_failed: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, userid, couponid, productid, points, createdat
		FROM %s
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`,
		schema.RewardEntry.Table,
	)

	rows, err := repository.pool.Query(context, pageQuery, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_reward_repo_list_failed: %w", err)
	}
	defer rows.Close()

	entries := []*Reward{}
	for rows.Next() {
		entry := &Reward{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CouponID,
			&entry.ProductID,
			&entry.Points,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_reward_repo_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_reward_repo_rows_failed: %w", err)
	}

	return entries, total, nil
}

/*
StatsByUser aggregates the user's ledger.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Stats: Point and scan totals
  - error: Database retrieval failures
*/
func (repository *PostgresRewardRepository) StatsByUser(context context.Context, userID string) (*Stats, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(points), 0), COUNT(*), MAX(createdat)
		FROM %s
		WHERE userid = $1`,
		schema.RewardEntry.Table,
	)

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&stats.TotalPoints,
		&stats.TotalScans,
		&stats.LastScanAt,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_reward_repo_stats_failed: %w", err)
	}

	return stats, nil
}
