package repository

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/review-service/internal/app/reviews/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository создает новый репозиторий решений ревьюеров
func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create сохраняет новое решение ревьюера
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, post_id, reviewer_id, status, comment, reviewed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(
		ctx, query,
		review.ID, review.PostID, review.ReviewerID, review.Status, review.Comment,
		review.ReviewedAt, review.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByID получает решение по ID
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, post_id, reviewer_id, status, comment, reviewed_at, created_at
		FROM reviews WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.PostID,
		&review.ReviewerID,
		&review.Status,
		&review.Comment,
		&review.ReviewedAt,
		&review.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}

	return &review, nil
}

// GetAll получает все решения
func (r *reviewRepository) GetAll(ctx context.Context) ([]entity.Review, error) {
	query := `
		SELECT id, post_id, reviewer_id, status, comment, reviewed_at, created_at
		FROM reviews
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// GetByPostID получает все решения по конкретному посту
func (r *reviewRepository) GetByPostID(ctx context.Context, postID uuid.UUID) ([]entity.Review, error) {
	query := `
		SELECT id, post_id, reviewer_id, status, comment, reviewed_at, created_at
		FROM reviews
		WHERE post_id = $1
		ORDER BY reviewed_at DESC
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by post: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// GetByStatus получает решения с указанным статусом
func (r *reviewRepository) GetByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error) {
	query := `
		SELECT id, post_id, reviewer_id, status, comment, reviewed_at, created_at
		FROM reviews
		WHERE status = $1
		ORDER BY reviewed_at DESC
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by status: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// Update обновляет решение ревьюера
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET status = $1, comment = $2, reviewed_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(
		ctx, query,
		review.Status, review.Comment, review.ReviewedAt, review.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Delete удаляет решение по ID
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// DeleteByPostID удаляет все решения по посту
func (r *reviewRepository) DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	query := `DELETE FROM reviews WHERE post_id = $1`

	result, err := r.db.Exec(ctx, query, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews by post: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanReviews(rows pgx.Rows) ([]entity.Review, error) {
	var reviews []entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.PostID,
			&review.ReviewerID,
			&review.Status,
			&review.Comment,
			&review.ReviewedAt,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
