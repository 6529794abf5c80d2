package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Subscription maps a username to its opaque push-endpoint descriptor.
// At most one subscription exists per username; a new registration replaces
// the prior one. Subscriptions are never pruned, even when the endpoint has
// long expired. That unbounded growth is a known gap of the original design,
// retained rather than guessed away.
type Subscription struct {
	Username   string          `json:"username"`
	Descriptor json.RawMessage `json:"subscription"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// SubscriptionStore is the upsertable username -> descriptor mapping.
type SubscriptionStore interface {
	// Upsert replaces any existing subscription for username with descriptor
	// and refreshes the update timestamp.
	Upsert(ctx context.Context, username string, descriptor json.RawMessage) error

	// Get is a point lookup. Absence is not an error: it returns (nil, nil).
	Get(ctx context.Context, username string) (*Subscription, error)
}

// PGSubscriptionStore implements SubscriptionStore on a PostgreSQL pool.
type PGSubscriptionStore struct {
	pool *pgxpool.Pool
}

// NewPGSubscriptionStore wraps the given pool as a SubscriptionStore.
func NewPGSubscriptionStore(pool *pgxpool.Pool) *PGSubscriptionStore {
	return &PGSubscriptionStore{pool: pool}
}

func (s *PGSubscriptionStore) Upsert(ctx context.Context, username string, descriptor json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (username, descriptor, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (username)
		 DO UPDATE SET descriptor = EXCLUDED.descriptor, updated_at = now()`,
		username, descriptor,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

func (s *PGSubscriptionStore) Get(ctx context.Context, username string) (*Subscription, error) {
	sub := Subscription{Username: username}

	err := s.pool.QueryRow(ctx,
		`SELECT descriptor, updated_at FROM subscriptions WHERE username = $1`,
		username,
	).Scan(&sub.Descriptor, &sub.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	return &sub, nil
}
