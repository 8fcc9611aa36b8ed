package schema

// UserContactMessageTable represents the 'users.contactmessage' table
type UserContactMessageTable struct {
	Table     string
	ID        string
	Name      string
	Mobile    string
	Email     string
	Subject   string
	Message   string
	CreatedAt string
}

// UserContactMessage is the schema definition for users.contactmessage
var UserContactMessage = UserContactMessageTable{
	Table:     "users.contactmessage",
	ID:        "id",
	Name:      "name",
	Mobile:    "mobile",
	Email:     "email",
	Subject:   "subject",
	Message:   "message",
	CreatedAt: "createdat",
}

func (t UserContactMessageTable) Columns() []string {
	return []string{t.ID, t.Name, t.Mobile, t.Email, t.Subject, t.Message, t.CreatedAt}
}
