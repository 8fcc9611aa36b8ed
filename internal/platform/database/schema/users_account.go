package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Mobile      string
	FullName    string
	Email       string
	Password    string
	PinCode     string
	State       string
	District    string
	Language    string
	Role        string
	IsActive    string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Mobile:      "mobile",
	FullName:    "fullname",
	Email:       "email",
	Password:    "passwordhash",
	PinCode:     "pincode",
	State:       "state",
	District:    "district",
	Language:    "language",
	Role:        "role",
	IsActive:    "isactive",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Mobile, t.FullName, t.Email, t.Password, t.PinCode, t.State,
		t.District, t.Language, t.Role, t.IsActive, t.LastLoginAt,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
