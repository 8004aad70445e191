package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NotificationHTTPClient клиент для Notification Service
// Уведомления отправляются best-effort: вызывающий код логирует отказ
// и продолжает работу, решение ревьюера от этого не зависит
type NotificationHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient создает новый клиент Notification Service
func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationHTTPClient {
	return &NotificationHTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type notificationRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendNotification отправляет запрос на доставку уведомления
func (c *NotificationHTTPClient) SendNotification(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(notificationRequest{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := c.baseURL + "/notifications"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from notification service: %d", resp.StatusCode)
	}

	return nil
}
