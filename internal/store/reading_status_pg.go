package store

import (
	"context"
	"errors"
	"fmt"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReadingStatusPG struct {
	db *pgxpool.Pool
}

func NewReadingStatusPG(db *pgxpool.Pool) *ReadingStatusPG {
	return &ReadingStatusPG{db: db}
}

func (repo *ReadingStatusPG) Upsert(ctx context.Context, userID, bookID, status string) error {
	if !entity.ValidReadingStatus(status) {
		return fmt.Errorf("%w: invalid reading status: %s", usecase.ErrValidation, status)
	}
	upsertSQL := `
		INSERT INTO reading_status (user_id, book_id, status, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
	`
	if _, err := repo.db.Exec(ctx, upsertSQL, userID, bookID, status); err != nil {
		return fmt.Errorf("%w: upsert reading status: %v", usecase.ErrDataStore, err)
	}
	return nil
}

func (repo *ReadingStatusPG) Get(ctx context.Context, userID, bookID string) (entity.ReadingStatus, error) {
	query := `
		SELECT user_id, book_id, status, updated_at
		FROM reading_status
		WHERE user_id = $1 AND book_id = $2
	`
	var rs entity.ReadingStatus
	err := repo.db.QueryRow(ctx, query, userID, bookID).
		Scan(&rs.UserID, &rs.BookID, &rs.Status, &rs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ReadingStatus{}, usecase.ErrNotFound
		}
		return entity.ReadingStatus{}, fmt.Errorf("%w: get reading status: %v", usecase.ErrDataStore, err)
	}
	return rs, nil
}

func (repo *ReadingStatusPG) ListForUser(ctx context.Context, userID string) ([]entity.ReadingStatus, error) {
	query := `
		SELECT user_id, book_id, status, updated_at
		FROM reading_status
		WHERE user_id = $1
	`
	rows, err := repo.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list reading statuses: %v", usecase.ErrDataStore, err)
	}
	defer rows.Close()

	var statuses []entity.ReadingStatus
	for rows.Next() {
		var rs entity.ReadingStatus
		if err := rows.Scan(&rs.UserID, &rs.BookID, &rs.Status, &rs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan reading status: %v", usecase.ErrDataStore, err)
		}
		statuses = append(statuses, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list reading statuses: %v", usecase.ErrDataStore, err)
	}
	return statuses, nil
}
