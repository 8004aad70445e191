//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"newsdesk/notification-service/internal/app/notifications/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BaseURL - адрес запущенного notification-service
	BaseURL = "http://localhost:8084"
)

// TestFullNotificationFlow тестирует полный цикл уведомления:
// 1. Приём уведомления
// 2. Чтение по ID
// 3. Появление в общем списке
func TestFullNotificationFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// ==================== Step 1: Create Notification ====================
	t.Log("Step 1: Creating notification")

	createReq := entity.CreateNotificationRequest{
		Recipient: "e2e-author@example.com",
		Subject:   "E2E review decision",
		Body:      "E2E notification body.",
	}
	body, _ := json.Marshal(createReq)

	resp, err := client.Post(BaseURL+"/notifications", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Notification should be accepted")

	var created entity.Notification
	err = json.NewDecoder(resp.Body).Decode(&created)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "e2e-author@example.com", created.Recipient)
	// Статус зависит от доступности SMTP: sent при живом relay, pending при лежачем
	assert.Contains(t, []entity.NotificationStatus{
		entity.NotificationStatusSent,
		entity.NotificationStatusPending,
	}, created.Status)

	notificationID := created.ID
	t.Logf("Created notification: %s (status: %s)", notificationID, created.Status)

	// ==================== Step 2: Get Notification ====================
	t.Log("Step 2: Fetching notification by ID")

	resp, err = client.Get(BaseURL + "/notifications/" + notificationID.String())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched entity.Notification
	err = json.NewDecoder(resp.Body).Decode(&fetched)
	require.NoError(t, err)
	assert.Equal(t, notificationID, fetched.ID)

	// ==================== Step 3: List Notifications ====================
	t.Log("Step 3: Listing notifications")

	resp, err = client.Get(BaseURL + "/notifications")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list entity.NotificationListResponse
	err = json.NewDecoder(resp.Body).Decode(&list)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, list.Total, 1)

	found := false
	for _, n := range list.Notifications {
		if n.ID == notificationID {
			found = true
			break
		}
	}
	assert.True(t, found, "Created notification should appear in the list")
}

// TestInvalidNotificationRejected проверяет валидацию запроса
func TestInvalidNotificationRejected(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	body := []byte(`{"recipient": "not-an-email", "subject": "s", "body": "b"}`)

	resp, err := client.Post(BaseURL+"/notifications", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
