package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"newsdesk/pkg/delivery"
	"newsdesk/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("post-service-test", "error", io.Discard)
	m.Run()
}

func testPolicy() delivery.Policy {
	return delivery.Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func TestPurgeReviewsForPost_Success(t *testing.T) {
	postID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/reviews/post/"+postID.String(), r.URL.Path)
		assert.Equal(t, "Bearer editor-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewReviewClient(server.URL, 5*time.Second, testPolicy())
	client.SetAuthToken("editor-token")

	err := client.PurgeReviewsForPost(context.Background(), postID)

	assert.NoError(t, err)
}

func TestPurgeReviewsForPost_NotFoundIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewReviewClient(server.URL, 5*time.Second, testPolicy())

	// Отсутствие ревью у поста равнозначно пустому purge
	err := client.PurgeReviewsForPost(context.Background(), uuid.New())

	assert.NoError(t, err)
}

func TestPurgeReviewsForPost_RetriesOnServerError(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewReviewClient(server.URL, 5*time.Second, testPolicy())

	err := client.PurgeReviewsForPost(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPurgeReviewsForPost_ExhaustedReturnsError(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewReviewClient(server.URL, 5*time.Second, testPolicy())

	err := client.PurgeReviewsForPost(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPurgeReviewsForPost_NoAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewReviewClient(server.URL, 5*time.Second, testPolicy())

	err := client.PurgeReviewsForPost(context.Background(), uuid.New())

	assert.NoError(t, err)
}

func TestPurgeReviewsForPost_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewReviewClient(server.URL, time.Second, testPolicy())

	err := client.PurgeReviewsForPost(context.Background(), uuid.New())

	assert.Error(t, err)
}
