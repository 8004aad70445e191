package entity

// CreateNotificationRequest - запрос на отправку уведомления
type CreateNotificationRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Subject   string `json:"subject" validate:"required,max=255"`
	Body      string `json:"body" validate:"required,max=10000"`
}

// NotificationListResponse - ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}

// ErrorResponse - стандартный формат ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}
