package schema

// PostTable represents the 'post' table
type PostTable struct {
	Table    string
	ID       string
	AuthorID string
	Created  string
	Title    string
	Body     string
}

// Post is the schema definition for the 'post' table
var Post = PostTable{
	Table:    "post",
	ID:       "id",
	AuthorID: "author_id",
	Created:  "created",
	Title:    "title",
	Body:     "body",
}

// Columns returns all standard column names
func (t PostTable) Columns() []string {
	return []string{t.ID, t.AuthorID, t.Created, t.Title, t.Body}
}
