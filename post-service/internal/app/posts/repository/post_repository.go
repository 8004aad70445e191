package repository

import (
	"context"
	"errors"
	"time"

	"newsdesk/post-service/internal/app/posts/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository создает новый репозиторий постов
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create создает новый пост
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	result := r.db.WithContext(ctx).Create(post)
	return result.Error
}

// GetByID получает пост по ID
func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	result := r.db.WithContext(ctx).First(&post, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &post, nil
}

// GetAll получает все посты
func (r *postRepository) GetAll(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// GetByStatus получает посты с заданным статусом
func (r *postRepository) GetByStatus(ctx context.Context, status entity.PostStatus) ([]entity.Post, error) {
	var posts []entity.Post
	result := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Search ищет посты по вхождению в контент, категории и автору
// Пустые параметры не участвуют в фильтре
func (r *postRepository) Search(ctx context.Context, content, category, author string) ([]entity.Post, error) {
	query := r.db.WithContext(ctx).Model(&entity.Post{})

	if content != "" {
		query = query.Where("content ILIKE ?", "%"+content+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if author != "" {
		query = query.Where("author = ?", author)
	}

	var posts []entity.Post
	result := query.Order("created_at DESC").Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Update обновляет редактируемые поля поста
// Статус здесь не трогаем: им управляет applier через ApplyStatus
func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := r.db.WithContext(ctx).Model(post).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"author":     post.Author,
		"category":   post.Category,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete удаляет пост
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Post{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// ApplyStatus применяет решение ревьюера одним условным UPDATE:
// проверка watermark и запись нового статуса происходят в одном стейтменте,
// поэтому две конкурентные доставки не могут обе пройти проверку
func (r *postRepository) ApplyStatus(ctx context.Context, id uuid.UUID, status entity.PostStatus, decidedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("id = ? AND (status_decided_at IS NULL OR status_decided_at <= ?)", id, decidedAt).
		Updates(map[string]interface{}{
			"status":            status,
			"status_decided_at": decidedAt,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
