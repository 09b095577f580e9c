package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// CreateAccount stores an account unless the email is already registered
func (s *Store) CreateAccount(ctx context.Context, a backend.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	ok, err := s.client.SetNX(ctx, AccountKey(strings.ToLower(a.Email)), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	if !ok {
		return domain.ErrEmailTaken
	}

	return nil
}

// AccountByEmail retrieves an account by email
func (s *Store) AccountByEmail(ctx context.Context, email string) (backend.Account, error) {
	data, err := s.client.Get(ctx, AccountKey(strings.ToLower(email))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return backend.Account{}, domain.ErrInvalidCredentials
		}
		return backend.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	var a backend.Account
	if err := json.Unmarshal(data, &a); err != nil {
		return backend.Account{}, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return a, nil
}

// RevokeToken marks a token id as signed out. The key expires with the token.
func (s *Store) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already unusable
		return nil
	}

	if err := s.client.Set(ctx, RevokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token id was signed out
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, RevokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}

	return n > 0, nil
}
