package view

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/session"
)

// Subscriber is the part of session.Provider the Board listens to.
type Subscriber interface {
	Subscribe(fn func(session.Event)) *session.Subscription
}

type boardKey struct {
	user   string
	filter domain.CategoryFilter
}

// Board keeps one CategoryView per user and filter. Views are dropped
// when their user signs in or out, and by Prune once idle.
type Board struct {
	repo Repository
	ttl  time.Duration
	log  logger.Logger

	mu    sync.Mutex
	views map[boardKey]*CategoryView
	sub   *session.Subscription
}

// NewBoard creates a Board subscribed to sessions.
func NewBoard(repo Repository, sessions Subscriber, ttl time.Duration, log logger.Logger) *Board {
	b := &Board{
		repo:  repo,
		ttl:   ttl,
		log:   log,
		views: make(map[boardKey]*CategoryView),
	}
	b.sub = sessions.Subscribe(b.onSession)
	return b
}

func (b *Board) onSession(e session.Event) {
	n := b.Drop(e.Session.UserID)
	if n > 0 {
		b.log.Debug("dropped views on session change",
			logger.String("user", e.Session.UserID),
			logger.String("event", e.Kind.String()),
			logger.Int("views", n))
	}
}

// View returns the user's view for filter, creating it on first use.
func (b *Board) View(userID string, filter domain.CategoryFilter) *CategoryView {
	key := boardKey{user: userID, filter: filter}

	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.views[key]
	if !ok {
		v = NewCategoryView(b.repo, filter)
		b.views[key] = v
	}
	return v
}

// Drop removes every view of userID and returns how many were removed.
func (b *Board) Drop(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for key := range b.views {
		if key.user == userID {
			delete(b.views, key)
			n++
		}
	}
	return n
}

// Prune removes views idle for longer than the board's TTL and returns
// how many were removed. A zero TTL disables pruning.
func (b *Board) Prune(now time.Time) int {
	if b.ttl <= 0 {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for key, v := range b.views {
		if now.Sub(v.LastUsed()) > b.ttl {
			delete(b.views, key)
			n++
		}
	}
	return n
}

// Len returns the number of live views.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.views)
}

// Close releases the session subscription.
func (b *Board) Close() {
	b.sub.Close()
}
