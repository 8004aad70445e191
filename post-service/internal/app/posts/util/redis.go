package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"newsdesk/pkg/metrics"
	"newsdesk/post-service/internal/app/posts/entity"

	"github.com/redis/go-redis/v9"
)

const publishedPostsCacheKey = "posts:published"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetPublished(ctx context.Context, posts []entity.Post, ttl time.Duration) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to marshal posts: %w", err)
	}

	if err := r.client.Set(ctx, publishedPostsCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError("post-service", metrics.RedisOpSet)
		return fmt.Errorf("failed to set published posts in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetPublished(ctx context.Context) ([]entity.Post, error) {
	data, err := r.client.Get(ctx, publishedPostsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("post-service", "posts")
			return nil, nil
		}
		metrics.RecordRedisError("post-service", metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get published posts from cache: %w", err)
	}

	var posts []entity.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	metrics.RecordCacheHit("post-service", "posts")

	return posts, nil
}

func (r *RedisClient) InvalidatePublished(ctx context.Context) error {
	if err := r.client.Del(ctx, publishedPostsCacheKey).Err(); err != nil {
		metrics.RecordRedisError("post-service", metrics.RedisOpDel)
		return fmt.Errorf("failed to delete published posts from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
