// Copyright (c) 2026 Agrio India. All rights reserved.

package rewards_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/rewards"
	"github.com/agrioindia/platform/pkg/pagination"
)

// # In-Memory Fakes

type fakeCouponRepository struct {
	couponsByHash map[string]*rewards.Coupon
}

func (repo *fakeCouponRepository) Redeem(_ context.Context, codeHash, userID string) (*rewards.Coupon, error) {
	coupon, ok := repo.couponsByHash[codeHash]
	if !ok {
		return nil, apperr.NotFound("Coupon not found")
	}
	if coupon.IsRedeemed {
		return nil, apperr.Conflict("This coupon has already been redeemed")
	}

	now := time.Now()
	coupon.IsRedeemed = true
	coupon.RedeemedBy = userID
	coupon.RedeemedAt = &now
	return coupon, nil
}

type fakeRewardRepository struct {
	entries []*rewards.Reward
}

func (repo *fakeRewardRepository) Create(_ context.Context, reward *rewards.Reward) error {
	copied := *reward
	repo.entries = append([]*rewards.Reward{&copied}, repo.entries...)
	return nil
}

func (repo *fakeRewardRepository) ListByUser(_ context.Context, userID string, params pagination.Params) ([]*rewards.Reward, int, error) {
	matching := []*rewards.Reward{}
	for _, entry := range repo.entries {
		if entry.UserID == userID {
			matching = append(matching, entry)
		}
	}

	start := params.Offset()
	if start > len(matching) {
		start = len(matching)
	}
	end := start + params.Limit
	if end > len(matching) {
		end = len(matching)
	}

	return matching[start:end], len(matching), nil
}

func (repo *fakeRewardRepository) StatsByUser(_ context.Context, userID string) (*rewards.Stats, error) {
	stats := &rewards.Stats{}
	for _, entry := range repo.entries {
		if entry.UserID != userID {
			continue
		}
		stats.TotalPoints += entry.Points
		stats.TotalScans++
		if stats.LastScanAt == nil || entry.CreatedAt.After(*stats.LastScanAt) {
			at := entry.CreatedAt
			stats.LastScanAt = &at
		}
	}
	return stats, nil
}

func seedCoupon(repo *fakeCouponRepository, code, productID string, points int) {
	repo.couponsByHash[sec.HashToken(code)] = &rewards.Coupon{
		ID:        "coupon-" + code,
		CodeHash:  sec.HashToken(code),
		ProductID: productID,
		Points:    points,
	}
}

func newService() (*rewards.Service, *fakeCouponRepository, *fakeRewardRepository) {
	coupons := &fakeCouponRepository{couponsByHash: map[string]*rewards.Coupon{}}
	ledger := &fakeRewardRepository{}
	return rewards.NewService(coupons, ledger), coupons, ledger
}

// # Scan Flow

/*
TestService_Scan verifies a valid coupon credits its points.
*/
func TestService_Scan(t *testing.T) {
	service, coupons, _ := newService()
	seedCoupon(coupons, "AGRIO-2026-0001", "product-1", 50)

	reward, err := service.Scan(context.Background(), "user-1", "AGRIO-2026-0001")
	require.NoError(t, err)

	assert.Equal(t, "user-1", reward.UserID)
	assert.Equal(t, "product-1", reward.ProductID)
	assert.Equal(t, 50, reward.Points)
	assert.NotEmpty(t, reward.ID)
}

/*
TestService_Scan_AlreadyRedeemed verifies a coupon can only pay out once.
*/
func TestService_Scan_AlreadyRedeemed(t *testing.T) {
	service, coupons, _ := newService()
	seedCoupon(coupons, "AGRIO-2026-0001", "product-1", 50)

	_, err := service.Scan(context.Background(), "user-1", "AGRIO-2026-0001")
	require.NoError(t, err)

	// A second scan, even by a different farmer, is rejected
	_, err = service.Scan(context.Background(), "user-2", "AGRIO-2026-0001")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Scan_UnknownCode verifies unknown codes are rejected.
*/
func TestService_Scan_UnknownCode(t *testing.T) {
	service, _, _ := newService()

	_, err := service.Scan(context.Background(), "user-1", "NO-SUCH-CODE-00")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Ledger Queries

/*
TestService_HistoryAndStats verifies ledger listing and aggregation.
*/
func TestService_HistoryAndStats(t *testing.T) {
	service, coupons, _ := newService()
	seedCoupon(coupons, "AGRIO-2026-0001", "product-1", 50)
	seedCoupon(coupons, "AGRIO-2026-0002", "product-2", 30)

	ctx := context.Background()
	_, err := service.Scan(ctx, "user-1", "AGRIO-2026-0001")
	require.NoError(t, err)
	_, err = service.Scan(ctx, "user-1", "AGRIO-2026-0002")
	require.NoError(t, err)

	// 1. History is scoped to the user
	entries, total, err := service.History(ctx, "user-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, entries, 2)

	otherEntries, otherTotal, err := service.History(ctx, "user-2", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, otherTotal)
	assert.Empty(t, otherEntries)

	// 2. Stats sum the credited points
	stats, err := service.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 80, stats.TotalPoints)
	assert.Equal(t, 2, stats.TotalScans)
	assert.NotNil(t, stats.LastScanAt)
}
