package entity

import "time"

// Reading status values. "ALL" is a filter wildcard, never stored.
const (
	StatusCurrentlyReading = "CURRENTLY_READING"
	StatusCompleted        = "COMPLETED"
	StatusPlanToRead       = "PLAN_TO_READ"
	StatusOnHold           = "ON_HOLD"

	StatusFilterAll = "ALL"
)

// ReadingStatus tracks where one user is with one book. One row per
// (UserID, BookID) pair.
type ReadingStatus struct {
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidReadingStatus reports whether s is one of the four stored statuses.
func ValidReadingStatus(s string) bool {
	switch s {
	case StatusCurrentlyReading, StatusCompleted, StatusPlanToRead, StatusOnHold:
		return true
	}
	return false
}
