package domain

// Company is the employer block nested in a User.
type Company struct {
	Name        string
	CatchPhrase string
}

// User is an author in the directory.
// The zero User is the empty-record default returned when a lookup fails.
type User struct {
	ID       int
	Name     string
	Username string
	Email    string
	Company  Company
}

// IsZero reports whether u is the empty-record default.
func (u User) IsZero() bool {
	return u.ID == 0 && u.Name == ""
}

// Post is a single post written by a User.
type Post struct {
	ID     int
	UserID int
	Title  string
	Body   string
}

// Comment is a reply attached to a Post.
type Comment struct {
	ID     int
	PostID int
	Name   string
	Email  string
	Body   string
}
