package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	event := NewReviewStatusEvent(
		uuid.New(),
		"approved",
		"looks good, minor typos fixed",
		time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.FixedZone("CET", 3600)),
	)

	data, err := Encode(event)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, event.EventType, decoded.EventType)
	assert.Equal(t, event.PostID, decoded.PostID)
	assert.Equal(t, event.Status, decoded.Status)
	assert.Equal(t, event.ReviewerComment, decoded.ReviewerComment)
	assert.True(t, event.DecidedAt.Equal(decoded.DecidedAt))
}

func TestEncodeDecode_RoundTrip_NoComment(t *testing.T) {
	event := NewReviewStatusEvent(uuid.New(), "rejected", "", time.Now())

	data, err := Encode(event)
	require.NoError(t, err)

	// Пустой комментарий не должен попадать в payload
	assert.NotContains(t, string(data), "reviewer_comment")

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, event.PostID, decoded.PostID)
	assert.Equal(t, "rejected", decoded.Status)
	assert.Empty(t, decoded.ReviewerComment)
	assert.True(t, event.DecidedAt.Equal(decoded.DecidedAt))
}

func TestEncode_FillsEventType(t *testing.T) {
	event := ReviewStatusEvent{
		PostID:    uuid.New(),
		Status:    "published",
		DecidedAt: time.Now(),
	}

	data, err := Encode(event)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, EventTypeReviewDecided, raw["event_type"])
}

func TestDecode_UnknownSchema(t *testing.T) {
	payload := []byte(`{"event_type":"ORDER_CREATED","order_id":"42"}`)

	decoded, err := Decode(payload)

	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{"event_type": "REVIEW_DECIDED`},
		{"missing post_id", `{"event_type":"REVIEW_DECIDED","status":"approved","decided_at":"2025-03-14T09:26:53Z"}`},
		{"missing status", `{"event_type":"REVIEW_DECIDED","post_id":"7b0a0be6-56cd-4f06-9d4c-17aeb486d9a3","decided_at":"2025-03-14T09:26:53Z"}`},
		{"missing decided_at", `{"event_type":"REVIEW_DECIDED","post_id":"7b0a0be6-56cd-4f06-9d4c-17aeb486d9a3","status":"approved"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode([]byte(tt.payload))

			assert.Nil(t, decoded)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_NormalizesTimezone(t *testing.T) {
	payload := []byte(`{"event_type":"REVIEW_DECIDED","post_id":"7b0a0be6-56cd-4f06-9d4c-17aeb486d9a3","status":"approved","decided_at":"2025-03-14T10:26:53+01:00"}`)

	decoded, err := Decode(payload)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, decoded.DecidedAt.Location())
	assert.Equal(t, 9, decoded.DecidedAt.Hour())
}
