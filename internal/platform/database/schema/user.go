package schema

// UserTable represents the 'user' table.
//
// The table name is kept double-quoted because 'user' is a reserved word in
// PostgreSQL; SQLite accepts the quoted form as well.
type UserTable struct {
	Table    string
	ID       string
	Username string
	Password string
}

// User is the schema definition for the 'user' table
var User = UserTable{
	Table:    `"user"`,
	ID:       "id",
	Username: "username",
	Password: "password",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Username, t.Password}
}
