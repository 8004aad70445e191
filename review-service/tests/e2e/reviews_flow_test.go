//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"newsdesk/review-service/internal/app/reviews/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BaseURL - адрес запущенного review-service
	BaseURL = "http://localhost:8082"
)

// AuthToken - тестовый JWT токен ревьюера
var AuthToken = "test-jwt-token"

func getAuthHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+AuthToken)
	return headers
}

// TestFullReviewFlow тестирует полный цикл решения:
// 1. Фиксация решения
// 2. Получение решений по посту
// 3. Пересмотр решения
// 4. Purge всех решений поста (идемпотентный)
func TestFullReviewFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	postID := uuid.New()

	// ==================== Step 1: Create Review ====================
	t.Log("Step 1: Creating review decision")

	createReq := entity.CreateReviewRequest{
		PostID:     postID,
		ReviewerID: uuid.New(),
		Status:     "approved",
		Comment:    "e2e approval",
	}
	body, _ := json.Marshal(createReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(body))
	req.Header = getAuthHeaders()

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Review creation should succeed")

	var created entity.Review
	err = json.NewDecoder(resp.Body).Decode(&created)
	require.NoError(t, err)

	assert.Equal(t, postID, created.PostID)
	assert.Equal(t, entity.ReviewStatusApproved, created.Status)

	// ==================== Step 2: List Reviews for Post ====================
	t.Log("Step 2: Listing reviews for post")

	req, _ = http.NewRequest(http.MethodGet, BaseURL+"/reviews/post/"+postID.String(), nil)
	req.Header = getAuthHeaders()

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listResp entity.ReviewListResponse
	err = json.NewDecoder(resp.Body).Decode(&listResp)
	require.NoError(t, err)
	assert.Equal(t, 1, listResp.Total)

	// ==================== Step 3: Re-decide ====================
	t.Log("Step 3: Re-deciding review")

	updateReq := entity.UpdateReviewRequest{Status: "published", Comment: "promoted"}
	body, _ = json.Marshal(updateReq)

	req, _ = http.NewRequest(http.MethodPut, BaseURL+"/reviews/"+created.ID.String(), bytes.NewBuffer(body))
	req.Header = getAuthHeaders()

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated entity.Review
	err = json.NewDecoder(resp.Body).Decode(&updated)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewStatusPublished, updated.Status)
	assert.True(t, updated.ReviewedAt.After(created.ReviewedAt))

	// ==================== Step 4: Purge (twice) ====================
	t.Log("Step 4: Purging reviews for post")

	for i := 0; i < 2; i++ {
		req, _ = http.NewRequest(http.MethodDelete, BaseURL+"/reviews/post/"+postID.String(), nil)
		req.Header = getAuthHeaders()

		resp, err = client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		// Повторный purge пустого набора - тоже успех
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
}
