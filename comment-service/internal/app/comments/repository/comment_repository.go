package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/comment-service/internal/app/comments/entity"
	"newsdesk/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository создает новый репозиторий комментариев
// Автоматически создает индекс по post_id для быстрой выборки
func NewCommentRepository(db *mongo.Database) CommentRepository {
	collection := db.Collection("comments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "post_id", Value: 1},
		},
		Options: options.Index().SetName("post_id_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create index on post_id")
	}

	return &commentRepository{
		collection: collection,
	}
}

// Create создает новый комментарий в MongoDB
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.EditedAt = now

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}

	return nil
}

// GetByID получает комментарий по ID
func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %w", err)
	}

	var comment entity.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// GetByPostID получает все комментарии поста
// Использует индекс post_id_idx для быстрой выборки
func (r *commentRepository) GetByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	filter := bson.M{"post_id": postID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []entity.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// Update обновляет текст комментария
func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	comment.EditedAt = time.Now().UTC()

	filter := bson.M{"_id": comment.ID}
	update := bson.M{
		"$set": bson.M{
			"content":   comment.Content,
			"edited_at": comment.EditedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// Delete удаляет комментарий
func (r *commentRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %w", err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCommentNotFound
	}

	return nil
}
