package usecase

import (
	"bookclub/internal/entity"
	"context"
)

// LibraryRepository records which remote-catalog books a user has imported
// into their personal collection. Membership is a set: adding a present
// user and removing an absent one are both no-ops.
type LibraryRepository interface {
	Add(ctx context.Context, userID string, book entity.Book) error
	Remove(ctx context.Context, userID, bookID string) error
	Contains(ctx context.Context, userID, bookID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]entity.Book, error)
}
