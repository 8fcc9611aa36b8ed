package schema

// RewardCouponTable represents the 'rewards.coupon' table
type RewardCouponTable struct {
	Table      string
	ID         string
	CodeHash   string
	ProductID  string
	Points     string
	BatchNo    string
	IsRedeemed string
	RedeemedBy string
	RedeemedAt string
	CreatedAt  string
}

// RewardCoupon is the schema definition for rewards.coupon
var RewardCoupon = RewardCouponTable{
	Table:      "rewards.coupon",
	ID:         "id",
	CodeHash:   "codehash",
	ProductID:  "productid",
	Points:     "points",
	BatchNo:    "batchno",
	IsRedeemed: "isredeemed",
	RedeemedBy: "redeemedby",
	RedeemedAt: "redeemedat",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t RewardCouponTable) Columns() []string {
	return []string{
		t.ID, t.CodeHash, t.ProductID, t.Points, t.BatchNo, t.IsRedeemed,
		t.RedeemedBy, t.RedeemedAt, t.CreatedAt,
	}
}
