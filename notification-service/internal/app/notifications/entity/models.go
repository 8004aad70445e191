package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification - уведомление, принятое на отправку
// Запись создаётся до первой попытки отправки, чтобы письмо
// не терялось при падении SMTP
type Notification struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Recipient string             `json:"recipient" gorm:"type:varchar(255);not null;index"`
	Subject   string             `json:"subject" gorm:"type:varchar(255);not null"`
	Body      string             `json:"body" gorm:"type:text;not null"`
	Status    NotificationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	// Attempts - сколько раз пытались отправить; после исчерпания лимита
	// запись переводится в failed и больше не ретраится
	Attempts  int        `json:"attempts" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// TableName указывает имя таблицы для GORM
func (Notification) TableName() string {
	return "notifications"
}

// NotificationStatus представляет состояние доставки уведомления
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending" // Ожидает отправки или ретрая
	NotificationStatusSent    NotificationStatus = "sent"    // Успешно отправлено
	NotificationStatusFailed  NotificationStatus = "failed"  // Попытки исчерпаны
)
