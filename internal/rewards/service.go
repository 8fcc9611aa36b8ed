// Copyright (c) 2026 Agrio India. All rights reserved.

package rewards

import (
	"context"
	"fmt"

	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/pkg/pagination"
	"github.com/agrioindia/platform/pkg/uuid"
)

// Service implements the loyalty program use cases.
type Service struct {
	couponRepository CouponRepository
	rewardRepository RewardRepository
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(couponRepo CouponRepository, rewardRepo RewardRepository) *Service {
	return &Service{
		couponRepository: couponRepo,
		rewardRepository: rewardRepo,
	}
}

/*
Scan redeems a coupon code and credits its points to the farmer.

Description: The code is hashed before lookup so clear-text codes never touch
the database. Redemption and the ledger credit are two steps; the redemption
is the atomic gate, so even if the credit insert fails a retry can never pay
out twice on the same code.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - *Reward: The credited ledger entry
  - err: NotFound, Conflict, or storage failures
*/
func (service *Service) Scan(context context.Context, userID, code string) (*Reward, error) {
	coupon, err := service.couponRepository.Redeem(context, sec.HashToken(code), userID)
	if err != nil {
		return nil, err
	}

	reward := &Reward{
		ID:        uuid.New(),
		UserID:    userID,
		CouponID:  coupon.ID,
		ProductID: coupon.ProductID,
		Points:    coupon.Points,
	}

	if err := service.rewardRepository.Create(context, reward); err != nil {
		return nil, fmt.Errorf("rewards_service_credit_failed: %w", err)
	}

	return reward, nil
}

/*
History returns one page of the farmer's ledger, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Reward: One page of entries
  - int: Total entries
  - err: Storage failures
*/
func (service *Service) History(context context.Context, userID string, params pagination.Params) ([]*Reward, int, error) {
	return service.rewardRepository.ListByUser(context, userID, params)
}

/*
Stats aggregates the farmer's ledger.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Stats: Point and scan totals
  - err: Storage failures
*/
func (service *Service) Stats(context context.Context, userID string) (*Stats, error) {
	return service.rewardRepository.StatsByUser(context, userID)
}
