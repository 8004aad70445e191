package entity

import "github.com/google/uuid"

// CreateReviewRequest - запрос на фиксацию решения ревьюера
type CreateReviewRequest struct {
	PostID     uuid.UUID `json:"post_id" validate:"required"`
	ReviewerID uuid.UUID `json:"reviewer_id" validate:"required"`
	Status     string    `json:"status" validate:"required,oneof=approved rejected published"`
	Comment    string    `json:"comment" validate:"max=2000"`
	// NotifyEmail - адрес автора поста для уведомления о решении (опционально)
	NotifyEmail string `json:"notify_email" validate:"omitempty,email"`
}

// UpdateReviewRequest - запрос на пересмотр решения
type UpdateReviewRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected published"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewListResponse - ответ со списком решений
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// ErrorResponse - стандартный формат ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}
