package models

// User is a registered account of the feedback site.
// Username is the primary key; a user is never updated, only created or
// deleted together with all of their feedback.
type User struct {
	// Username is the unique, immutable account identifier.
	Username string `json:"username"`

	// Password holds the bcrypt hash of the user's password, never the raw
	// value. It is excluded from every JSON or template representation.
	Password string `json:"-"`

	// Email is unique across all users.
	Email string `json:"email"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// FullName returns the user's first and last name separated by a space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Profile is everything shown on a user's own details page.
type Profile struct {
	User     User
	Feedback []Feedback
}
