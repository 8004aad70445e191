package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus - решение ревьюера по посту
type ReviewStatus string

const (
	ReviewStatusApproved  ReviewStatus = "approved"
	ReviewStatusRejected  ReviewStatus = "rejected"
	ReviewStatusPublished ReviewStatus = "published"
)

// ParseReviewStatus проверяет, что строка является допустимым решением
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch ReviewStatus(s) {
	case ReviewStatusApproved, ReviewStatusRejected, ReviewStatusPublished:
		return ReviewStatus(s), nil
	default:
		return "", fmt.Errorf("unknown review status: %q", s)
	}
}

// Review - решение ревьюера по конкретному посту
// ReviewedAt - момент принятия решения, он же decided_at в событии:
// по нему post-service отбрасывает устаревшие доставки
type Review struct {
	ID         uuid.UUID    `json:"id"`
	PostID     uuid.UUID    `json:"post_id"`
	ReviewerID uuid.UUID    `json:"reviewer_id"`
	Status     ReviewStatus `json:"status"`
	Comment    string       `json:"comment,omitempty"`
	ReviewedAt time.Time    `json:"reviewed_at"`
	CreatedAt  time.Time    `json:"created_at"`
}
