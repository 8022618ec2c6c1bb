package models

// Feedback is a short note written by a user. Username references the
// owning user; the row is removed when that user is deleted.
type Feedback struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

// TableName returns the name of the database table
// associated with the Feedback model.
func (f Feedback) TableName() string {
	return "feedback"
}

// FeedbackUpdate describes a partial change of a feedback record.
// A nil field is left untouched.
type FeedbackUpdate struct {
	ID      int64
	Title   *string
	Content *string
}

// IsEmpty reports whether the update changes nothing.
func (u FeedbackUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}
