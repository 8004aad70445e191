package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk/pkg/delivery"

	"github.com/google/uuid"
)

// ReviewClient клиент для взаимодействия с Review Service
// Используется при каскадном удалении поста: сначала удаляются
// зависимые ревью на стороне Review Service, потом сам пост
type ReviewClient struct {
	baseURL    string
	httpClient *http.Client
	policy     delivery.Policy
	authToken  string // JWT токен для аутентификации в Review Service
}

// NewReviewClient создает новый клиент для Review Service
// timeout ограничивает каждый отдельный HTTP вызов: зависание удалённой
// стороны трактуется как её отказ, а не как вечное ожидание
func NewReviewClient(baseURL string, timeout time.Duration, policy delivery.Policy) *ReviewClient {
	return &ReviewClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		policy: policy,
	}
}

// SetAuthToken устанавливает JWT токен для аутентификации
func (c *ReviewClient) SetAuthToken(token string) {
	c.authToken = token
}

// PurgeReviewsForPost удаляет все ревью поста в Review Service
// Вызов идемпотентен на удалённой стороне: удаление пустого набора - успех.
// Повторяет попытки по общей политике доставки, после исчерпания
// возвращает последнюю ошибку вызывающему коду
func (c *ReviewClient) PurgeReviewsForPost(ctx context.Context, postID uuid.UUID) error {
	url := fmt.Sprintf("%s/reviews/post/%s", c.baseURL, postID.String())

	return c.policy.Retry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		if c.authToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch resp.StatusCode {
		case http.StatusOK, http.StatusNoContent:
			return nil
		case http.StatusNotFound:
			// У поста нет ни одного ревью - с точки зрения purge это успех
			return nil
		default:
			return fmt.Errorf("unexpected status code from review service: %d", resp.StatusCode)
		}
	})
}
