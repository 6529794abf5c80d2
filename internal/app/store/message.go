package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Message kinds.
const (
	KindText  = "text"
	KindImage = "image"
)

// DefaultRecentLimit is the size of the bounded history window returned to clients.
const DefaultRecentLimit = 100

// Message is one entry in the append-only chat log. Messages are immutable
// once created; no edit or delete operation exists anywhere in the system.
type Message struct {
	ID        uuid.UUID `json:"id"`
	From      string    `json:"from"`
	Content   string    `json:"content"`
	Kind      string    `json:"type"`
	ImageURL  *string   `json:"imageUrl"`
	Timestamp time.Time `json:"timestamp"`

	// Read is persisted on every message but never consulted by anything.
	// Kept to match the stored record shape.
	Read bool `json:"read"`
}

// MessageStore is the append-only message log with a bounded read surface.
type MessageStore interface {
	// Append persists a new message, stamping the server-side creation time
	// and setting the read flag to false.
	Append(ctx context.Context, sender, content, kind string, imageURL *string) (Message, error)

	// Recent returns up to limit messages, ordered oldest-to-newest among the
	// most recently created limit messages. There is no cursor or pagination
	// beyond this single window.
	Recent(ctx context.Context, limit int) ([]Message, error)
}

// PGMessageStore implements MessageStore on a PostgreSQL pool.
type PGMessageStore struct {
	pool *pgxpool.Pool
}

// NewPGMessageStore wraps the given pool as a MessageStore.
func NewPGMessageStore(pool *pgxpool.Pool) *PGMessageStore {
	return &PGMessageStore{pool: pool}
}

func (s *PGMessageStore) Append(ctx context.Context, sender, content, kind string, imageURL *string) (Message, error) {
	msg := Message{
		ID:        uuid.New(),
		From:      sender,
		Content:   content,
		Kind:      kind,
		ImageURL:  imageURL,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO messages (id, sender, content, kind, image_url, created_at, read)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.From, msg.Content, msg.Kind, msg.ImageURL, msg.Timestamp, msg.Read,
	)
	if err != nil {
		return Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return msg, nil
}

func (s *PGMessageStore) Recent(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, sender, content, kind, image_url, created_at, read
		 FROM messages
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.From, &msg.Content, &msg.Kind, &msg.ImageURL, &msg.Timestamp, &msg.Read); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message rows: %w", err)
	}

	// The query returns newest-first; flip to ascending for display.
	slices.Reverse(messages)

	return messages, nil
}
