// Copyright (c) 2026 Agrio India. All rights reserved.

package rewards

import (
	"context"

	"github.com/agrioindia/platform/pkg/pagination"
)

// # Coupon Data Access

// CouponRepository defines the data access contract for coupons.
type CouponRepository interface {

	/*
		Redeem atomically burns the coupon matching codeHash for the user.

		Parameters:
		  - context: context.Context
		  - codeHash: string
		  - userID: string

		Returns:
		  - *Coupon: The burned coupon
		  - error: apperr.NotFound for unknown codes, apperr.Conflict for
		    already-redeemed ones, or storage failures
	*/
	Redeem(context context.Context, codeHash, userID string) (*Coupon, error)
}

// # Ledger Data Access

// RewardRepository defines the data access contract for the loyalty ledger.
type RewardRepository interface {

	/*
		Create appends a credit entry to the ledger.

		Parameters:
		  - context: context.Context
		  - reward: *Reward

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, reward *Reward) error

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
	ListByUser(context context.Context, userID string, params pagination.Params) ([]*Reward, int, error)

	/*
		StatsByUser aggregates the user's ledger.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Stats: Point and scan totals
		  - error: Database retrieval failures
	*/
	StatsByUser(context context.Context, userID string) (*Stats, error)
}
