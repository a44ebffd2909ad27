package usecase

import (
	"bookclub/internal/entity"
	"context"
)

// Scope narrows a local catalog listing.
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeFavorites Scope = "favorites"
)

// BookRepository is the local catalog: book rows plus their rating rows,
// aggregated into the shared Book shape.
type BookRepository interface {
	// List returns all local books in scope with the average rating
	// computed from the rating rows (0 when unrated).
	List(ctx context.Context, scope Scope) ([]entity.Book, error)
	// Get returns a single book with the same aggregation, or ErrNotFound.
	Get(ctx context.Context, id string) (entity.Book, error)
	// SetFavorite flips the favorite flag, or ErrNotFound.
	SetFavorite(ctx context.Context, id string, favorite bool) error
}
