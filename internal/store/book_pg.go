package store

import (
	"context"
	"fmt"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

// One query fetches the book rows and their rating rows together; the
// average is computed in SQL, rounded to one decimal, 0 when no ratings.
const bookSelect = `
	SELECT b.id, b.title, b.author, COALESCE(b.description, ''), b.image_url, b.is_favorite,
	       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0)::float8 AS average_rating
	FROM books b
	LEFT JOIN ratings r ON r.book_id = b.id
`

func (repo *BookPG) List(ctx context.Context, scope usecase.Scope) ([]entity.Book, error) {
	query := bookSelect + `
	WHERE ($1 = 'all' OR b.is_favorite)
	GROUP BY b.id
	ORDER BY b.title
	`
	rows, err := repo.db.Query(ctx, query, string(scope))
	if err != nil {
		return nil, fmt.Errorf("%w: list books: %v", usecase.ErrDataStore, err)
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan book: %v", usecase.ErrDataStore, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list books: %v", usecase.ErrDataStore, err)
	}
	return books, nil
}

func (repo *BookPG) Get(ctx context.Context, id string) (entity.Book, error) {
	query := bookSelect + `
	WHERE b.id = $1
	GROUP BY b.id
	`
	rows, err := repo.db.Query(ctx, query, id)
	if err != nil {
		return entity.Book{}, fmt.Errorf("%w: get book: %v", usecase.ErrDataStore, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return entity.Book{}, fmt.Errorf("%w: get book: %v", usecase.ErrDataStore, err)
		}
		return entity.Book{}, usecase.ErrNotFound
	}
	b, err := scanBook(rows)
	if err != nil {
		return entity.Book{}, fmt.Errorf("%w: scan book: %v", usecase.ErrDataStore, err)
	}
	return b, nil
}

func (repo *BookPG) SetFavorite(ctx context.Context, id string, favorite bool) error {
	tag, err := repo.db.Exec(ctx, `UPDATE books SET is_favorite = $2 WHERE id = $1`, id, favorite)
	if err != nil {
		return fmt.Errorf("%w: set favorite: %v", usecase.ErrDataStore, err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func scanBook(rows pgx.Rows) (entity.Book, error) {
	var b entity.Book
	if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ImageURL, &b.IsFavorite, &b.AverageRating); err != nil {
		return entity.Book{}, err
	}
	b.Source = entity.SourceLocal
	return b.Labeled(), nil
}
