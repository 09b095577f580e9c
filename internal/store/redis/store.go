package redis

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
)

// Store handles Redis operations for links, accounts and revoked tokens
type Store struct {
	client *redis.Client
	newID  func() string
}

var (
	_ backend.LinkStore    = (*Store)(nil)
	_ backend.AccountStore = (*Store)(nil)
	_ backend.Pinger       = (*Store)(nil)
)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		newID:  uuid.NewString,
	}
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
