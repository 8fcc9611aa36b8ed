package schema

// RewardEntryTable represents the 'rewards.reward' table
type RewardEntryTable struct {
	Table     string
	ID        string
	UserID    string
	CouponID  string
	ProductID string
	Points    string
	CreatedAt string
}

// RewardEntry is the schema definition for rewards.reward
var RewardEntry = RewardEntryTable{
	Table:     "rewards.reward",
	ID:        "id",
	UserID:    "userid",
	CouponID:  "couponid",
	ProductID: "productid",
	Points:    "points",
	CreatedAt: "createdat",
}

func (t RewardEntryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.CouponID, t.ProductID, t.Points, t.CreatedAt}
}
