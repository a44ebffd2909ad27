package usecase

import (
	"bookclub/internal/entity"
	"context"
)

// RemoteCatalog is the read-only third-party book search.
type RemoteCatalog interface {
	// Search queries by free text; maxResults <= 0 means the client's cap.
	Search(ctx context.Context, query string, maxResults int) ([]entity.Book, error)
	// GetVolume returns ErrNotFound on a service miss; the caller falls back.
	GetVolume(ctx context.Context, id string) (entity.Book, error)
}
