package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// The JSON field names and null handling are the API wire contract; clients
// key off "from", "type" and a literal null imageUrl for text messages.
func TestMessage_WireShape(t *testing.T) {
	req := require.New(t)

	msg := Message{
		ID:        uuid.MustParse("0c9adf2b-19e6-4603-9c3a-214462839cd2"),
		From:      "daddy",
		Content:   "hello",
		Kind:      KindText,
		ImageURL:  nil,
		Timestamp: time.Date(2025, 3, 9, 12, 30, 0, 0, time.UTC),
		Read:      false,
	}

	raw, err := json.Marshal(msg)
	req.NoError(err)

	var decoded map[string]any
	req.NoError(json.Unmarshal(raw, &decoded))

	req.Equal("0c9adf2b-19e6-4603-9c3a-214462839cd2", decoded["id"])
	req.Equal("daddy", decoded["from"])
	req.Equal("text", decoded["type"])
	req.Equal("2025-03-09T12:30:00Z", decoded["timestamp"])
	req.Equal(false, decoded["read"])

	// imageUrl must be present and explicitly null for text messages.
	req.Contains(decoded, "imageUrl")
	req.Nil(decoded["imageUrl"])
}
