package usecase

import (
	"bookclub/internal/entity"
	"context"
)

type RatingRepository interface {
	// Upsert enforces one rating row per (user, book): insert or overwrite.
	Upsert(ctx context.Context, userID, bookID string, rating int, comment *string) error
	GetUserRating(ctx context.Context, userID, bookID string) (entity.Rating, error)
	// GetBookRating returns the mean and count over the book's rating rows.
	GetBookRating(ctx context.Context, bookID string) (average float64, count int, err error)
	// ListReviews returns the book's ratings joined with reviewer usernames.
	ListReviews(ctx context.Context, bookID string) ([]entity.Review, error)
}

type ReadingStatusRepository interface {
	// Upsert enforces one status row per (user, book).
	Upsert(ctx context.Context, userID, bookID, status string) error
	Get(ctx context.Context, userID, bookID string) (entity.ReadingStatus, error)
	// ListForUser returns all of one user's statuses, for decorating lists.
	ListForUser(ctx context.Context, userID string) ([]entity.ReadingStatus, error)
}
