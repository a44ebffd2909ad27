package entity

import "time"

// Rating is one user's score for one book. The (UserID, BookID) pair is
// unique; repeated submissions overwrite via upsert-on-conflict.
type Rating struct {
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is a rating joined with the reviewer's display name for the
// book detail page.
type Review struct {
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
