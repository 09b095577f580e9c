// Package memory is a process-local backend: link rows, accounts and
// revoked tokens kept in maps. Used in dev mode and in tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// Store provides in-memory storage for links and accounts.
type Store struct {
	mu       sync.RWMutex
	links    map[string]domain.Link     // ID -> Link
	accounts map[string]backend.Account // email -> Account
	revoked  map[string]time.Time       // token ID -> expiry
	newID    func() string
}

var (
	_ backend.LinkStore    = (*Store)(nil)
	_ backend.AccountStore = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{
		links:    make(map[string]domain.Link),
		accounts: make(map[string]backend.Account),
		revoked:  make(map[string]time.Time),
		newID:    uuid.NewString,
	}
}

// ─────────────────────────────────────────────────────────────────
// Links
// ─────────────────────────────────────────────────────────────────

// Select returns the owner's links, newest first.
func (s *Store) Select(ctx context.Context, q backend.Query) ([]domain.Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Link, 0)
	for _, l := range s.links {
		if l.Owner != q.Owner {
			continue
		}
		if q.Category != "" && l.Category != q.Category {
			continue
		}
		out = append(out, l)
	}

	slices.SortFunc(out, func(a, b domain.Link) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Insert assigns an id and stores the link.
func (s *Store) Insert(ctx context.Context, l domain.Link) (domain.Link, error) {
	if err := ctx.Err(); err != nil {
		return domain.Link{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = s.newID()
	s.links[l.ID] = l
	return l, nil
}

// Update applies patch to a link owned by owner.
func (s *Store) Update(ctx context.Context, owner, id string, patch domain.LinkPatch) (domain.Link, error) {
	if err := ctx.Err(); err != nil {
		return domain.Link{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[id]
	if !ok || l.Owner != owner {
		return domain.Link{}, domain.ErrNotFound
	}
	l = patch.Apply(l)
	s.links[id] = l
	return l, nil
}

// Delete removes a link owned by owner.
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[id]
	if !ok || l.Owner != owner {
		return domain.ErrNotFound
	}
	delete(s.links, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Accounts
// ─────────────────────────────────────────────────────────────────

// CreateAccount stores a new account keyed by its email.
func (s *Store) CreateAccount(ctx context.Context, a backend.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := strings.ToLower(a.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[key]; exists {
		return domain.ErrEmailTaken
	}
	s.accounts[key] = a
	return nil
}

// AccountByEmail looks an account up by email.
func (s *Store) AccountByEmail(ctx context.Context, email string) (backend.Account, error) {
	if err := ctx.Err(); err != nil {
		return backend.Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return backend.Account{}, domain.ErrInvalidCredentials
	}
	return a, nil
}

// RevokeToken records a signed-out token until it would have expired anyway.
func (s *Store) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether tokenID was signed out.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.revoked[tokenID]
	return ok, nil
}

// PurgeRevoked drops revoked-token entries whose token has expired and
// returns how many were removed.
func (s *Store) PurgeRevoked(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
			n++
		}
	}
	return n
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }
