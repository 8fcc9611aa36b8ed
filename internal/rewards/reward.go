// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package rewards implements the QR coupon loyalty program.

Every product pack carries a single-use QR coupon. Scanning a valid coupon
credits its points to the farmer's ledger; the coupon is burned atomically so
a code can never pay out twice.

# Architecture

  - Service: Orchestrates the scan flow and ledger queries.
  - Repository: Abstracted interfaces for Postgres (coupons, ledger).
  - Security: Coupon codes are stored as SHA-256 hashes, never in clear.
*/
package rewards

import "time"

// # Domain Entities

// Coupon represents a single-use QR coupon printed on a product pack.
type Coupon struct {
	ID         string     `json:"id"`
	CodeHash   string     `json:"-"` // Hashed coupon code. Omitted for security.
	ProductID  string     `json:"product_id"`
	Points     int        `json:"points"`
	BatchNo    string     `json:"batch_no,omitempty"`
	IsRedeemed bool       `json:"is_redeemed"`
	RedeemedBy string     `json:"-"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time  `json:"-"`
}

// Reward is one credit entry in a farmer's loyalty ledger.
type Reward struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CouponID  string    `json:"coupon_id"`
	ProductID string    `json:"product_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes a farmer's loyalty ledger.
type Stats struct {
	TotalPoints int        `json:"total_points"`
	TotalScans  int        `json:"total_scans"`
	LastScanAt  *time.Time `json:"last_scan_at,omitempty"`
}

// # Field Identifiers

const (
	FieldCode = "code"
)
