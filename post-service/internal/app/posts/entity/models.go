package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Post представляет публикацию в системе
// Status владеет post-service, но меняется двумя путями: обычным
// редактированием и событиями решений ревьюеров из Review Service
type Post struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title    string     `json:"title" gorm:"type:varchar(255);not null"`
	Content  string     `json:"content" gorm:"type:text;not null"`
	Author   string     `json:"author" gorm:"type:varchar(255);not null"`
	Category string     `json:"category" gorm:"type:varchar(100);not null"`
	Status   PostStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	// StatusDecidedAt - watermark: время последнего применённого решения ревьюера.
	// События со старшим decided_at отбрасываются, чтобы повторная доставка
	// не откатила более свежий статус
	StatusDecidedAt *time.Time `json:"status_decided_at,omitempty" gorm:"index"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Post) TableName() string {
	return "posts"
}

// PostStatus представляет статус публикации поста
// Совпадает с исходами решения ревьюера
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"     // Черновик
	PostStatusPending   PostStatus = "pending"   // Ожидает ревью
	PostStatusApproved  PostStatus = "approved"  // Одобрен ревьюером
	PostStatusRejected  PostStatus = "rejected"  // Отклонён ревьюером
	PostStatusPublished PostStatus = "published" // Опубликован
)

// ParsePostStatus проверяет, что строка входит в закрытый набор статусов
func ParsePostStatus(s string) (PostStatus, error) {
	switch PostStatus(s) {
	case PostStatusDraft, PostStatusPending, PostStatusApproved, PostStatusRejected, PostStatusPublished:
		return PostStatus(s), nil
	default:
		return "", fmt.Errorf("invalid post status: %q", s)
	}
}
