package store

import (
	"context"
	"fmt"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LibraryPG records which remote-catalog books each user has imported.
// Membership lives in a google_books_users join table with a uniqueness
// constraint, so add/remove are idempotent without read-modify-write.
type LibraryPG struct {
	db *pgxpool.Pool
}

func NewLibraryPG(db *pgxpool.Pool) *LibraryPG {
	return &LibraryPG{db: db}
}

// Add stores the remote book's metadata and the caller's membership.
// Re-adding a book already in the user's library is a no-op.
func (repo *LibraryPG) Add(ctx context.Context, userID string, book entity.Book) error {
	tx, err := repo.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: add to library: %v", usecase.ErrDataStore, err)
	}
	defer tx.Rollback(ctx)

	bookSQL := `
		INSERT INTO google_books (id, title, author, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id)
		DO UPDATE SET title = EXCLUDED.title, author = EXCLUDED.author,
		              description = EXCLUDED.description, image_url = EXCLUDED.image_url
	`
	if _, err := tx.Exec(ctx, bookSQL, book.ID, book.Title, book.Author, book.Description, book.ImageURL); err != nil {
		return fmt.Errorf("%w: add to library: %v", usecase.ErrDataStore, err)
	}

	memberSQL := `
		INSERT INTO google_books_users (book_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (book_id, user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, memberSQL, book.ID, userID); err != nil {
		return fmt.Errorf("%w: add to library: %v", usecase.ErrDataStore, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: add to library: %v", usecase.ErrDataStore, err)
	}
	return nil
}

// Remove drops the caller's membership only; other users keep theirs.
// Removing an absent membership is a no-op.
func (repo *LibraryPG) Remove(ctx context.Context, userID, bookID string) error {
	deleteSQL := `DELETE FROM google_books_users WHERE book_id = $1 AND user_id = $2`
	if _, err := repo.db.Exec(ctx, deleteSQL, bookID, userID); err != nil {
		return fmt.Errorf("%w: remove from library: %v", usecase.ErrDataStore, err)
	}
	return nil
}

func (repo *LibraryPG) Contains(ctx context.Context, userID, bookID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM google_books_users WHERE book_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := repo.db.QueryRow(ctx, query, bookID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: library membership: %v", usecase.ErrDataStore, err)
	}
	return exists, nil
}

// ListForUser is the "my library" view: imported remote books only, with
// the average over any local rating rows those books have accumulated.
func (repo *LibraryPG) ListForUser(ctx context.Context, userID string) ([]entity.Book, error) {
	query := `
		SELECT g.id, g.title, g.author, COALESCE(g.description, ''), g.image_url,
		       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0)::float8 AS average_rating
		FROM google_books g
		JOIN google_books_users m ON m.book_id = g.id
		LEFT JOIN ratings r ON r.book_id = g.id
		WHERE m.user_id = $1
		GROUP BY g.id
		ORDER BY g.title
	`
	rows, err := repo.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list library: %v", usecase.ErrDataStore, err)
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ImageURL, &b.AverageRating); err != nil {
			return nil, fmt.Errorf("%w: scan library book: %v", usecase.ErrDataStore, err)
		}
		b.Source = entity.SourceRemote
		books = append(books, b.Labeled())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list library: %v", usecase.ErrDataStore, err)
	}
	return books, nil
}
