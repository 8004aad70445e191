package entity

// CreatePostRequest - запрос на создание поста
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Content  string `json:"content" validate:"required,min=1"`
	Author   string `json:"author" validate:"required,min=1,max=255"`
	Category string `json:"category" validate:"required,min=1,max=100"`
}

// UpdatePostRequest - запрос на обновление поста
type UpdatePostRequest struct {
	Title    string `json:"title" validate:"omitempty,min=1,max=255"`
	Content  string `json:"content" validate:"omitempty,min=1"`
	Author   string `json:"author" validate:"omitempty,min=1,max=255"`
	Category string `json:"category" validate:"omitempty,min=1,max=100"`
}

// SearchPostsRequest - параметры поиска постов
type SearchPostsRequest struct {
	Content  string `form:"content"`
	Category string `form:"category"`
	Author   string `form:"author"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PostListResponse - ответ со списком постов
type PostListResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}
