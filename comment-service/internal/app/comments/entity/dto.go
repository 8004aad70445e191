package entity

// CreateCommentRequest - запрос на создание комментария
type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required,uuid"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// UpdateCommentRequest - запрос на редактирование комментария
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// CommentListResponse - ответ со списком комментариев
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

// ErrorResponse - стандартный формат ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}
