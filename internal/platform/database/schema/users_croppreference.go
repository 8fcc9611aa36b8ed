package schema

// UserCropPreferenceTable represents the 'users.croppreference' table
type UserCropPreferenceTable struct {
	Table     string
	UserID    string
	CropID    string
	CreatedAt string
}

// UserCropPreference is the schema definition for users.croppreference
var UserCropPreference = UserCropPreferenceTable{
	Table:     "users.croppreference",
	UserID:    "userid",
	CropID:    "cropid",
	CreatedAt: "createdat",
}

func (t UserCropPreferenceTable) Columns() []string {
	return []string{t.UserID, t.CropID, t.CreatedAt}
}
