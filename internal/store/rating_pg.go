package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingPG struct {
	db *pgxpool.Pool
}

func NewRatingPG(db *pgxpool.Pool) *RatingPG {
	return &RatingPG{db: db}
}

// Upsert keeps exactly one rating row per (user, book). The conflict key is
// the only serialization guarantee the data model needs.
func (repo *RatingPG) Upsert(ctx context.Context, userID, bookID string, rating int, comment *string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", usecase.ErrValidation)
	}
	upsertSQL := `
		INSERT INTO ratings (user_id, book_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, created_at = NOW()
	`
	if _, err := repo.db.Exec(ctx, upsertSQL, userID, bookID, rating, comment); err != nil {
		return fmt.Errorf("%w: upsert rating: %v", usecase.ErrDataStore, err)
	}
	return nil
}

func (repo *RatingPG) GetUserRating(ctx context.Context, userID, bookID string) (entity.Rating, error) {
	query := `
		SELECT user_id, book_id, rating, comment, created_at
		FROM ratings
		WHERE user_id = $1 AND book_id = $2
	`
	var r entity.Rating
	err := repo.db.QueryRow(ctx, query, userID, bookID).
		Scan(&r.UserID, &r.BookID, &r.Rating, &r.Comment, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Rating{}, usecase.ErrNotFound
		}
		return entity.Rating{}, fmt.Errorf("%w: get user rating: %v", usecase.ErrDataStore, err)
	}
	return r, nil
}

func (repo *RatingPG) GetBookRating(ctx context.Context, bookID string) (float64, int, error) {
	query := `
		SELECT ROUND(AVG(rating)::numeric, 1)::float8, COUNT(rating)
		FROM ratings
		WHERE book_id = $1
	`
	var average sql.NullFloat64
	var count int
	if err := repo.db.QueryRow(ctx, query, bookID).Scan(&average, &count); err != nil {
		return 0, 0, fmt.Errorf("%w: book rating: %v", usecase.ErrDataStore, err)
	}
	if !average.Valid {
		return 0, 0, nil
	}
	return average.Float64, count, nil
}

func (repo *RatingPG) ListReviews(ctx context.Context, bookID string) ([]entity.Review, error) {
	query := `
		SELECT COALESCE(p.username, 'Anonymous'), r.user_id, r.rating, r.comment, r.created_at
		FROM ratings r
		LEFT JOIN profiles p ON p.user_id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := repo.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews: %v", usecase.ErrDataStore, err)
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.Username, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan review: %v", usecase.ErrDataStore, err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list reviews: %v", usecase.ErrDataStore, err)
	}
	return reviews, nil
}
