package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment - комментарий читателя к посту
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PostID    string             `json:"post_id" bson:"post_id"` // UUID поста из Post Service
	Author    string             `json:"author" bson:"author"`   // Идентификатор автора из JWT
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	EditedAt  time.Time          `json:"edited_at" bson:"edited_at"`
}
