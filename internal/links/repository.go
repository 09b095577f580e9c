// Package links is the CRUD and filter facade over a backend.LinkStore.
// Every call takes the caller's session explicitly.
package links

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// Repository gives a session CRUD access to its own links.
type Repository struct {
	store backend.LinkStore
	log   logger.Logger
	now   func() time.Time
}

// Option customizes a Repository.
type Option func(*Repository)

// WithClock replaces time.Now as the source of CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a Repository over store.
func NewRepository(store backend.LinkStore, log logger.Logger, opts ...Option) *Repository {
	r := &Repository{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the session's links matching filter, newest first.
// Without a session the result is empty and the store is not called.
func (r *Repository) List(ctx context.Context, filter domain.CategoryFilter, s *domain.Session) ([]domain.Link, error) {
	if s == nil {
		return []domain.Link{}, nil
	}
	if !filter.Valid() {
		return nil, &domain.FetchError{Err: domain.ErrInvalidCategory}
	}

	q := backend.Query{Owner: s.UserID}
	if c, ok := filter.Category(); ok {
		q.Category = c
	}

	start := time.Now()
	out, err := r.store.Select(ctx, q)
	if err != nil {
		r.log.Warn("list failed",
			logger.String("owner", s.UserID),
			logger.String("category", string(filter)),
			logger.Error(err))
		return nil, &domain.FetchError{Err: err}
	}

	r.log.Debug("list",
		logger.String("owner", s.UserID),
		logger.String("category", string(filter)),
		logger.Int("count", len(out)),
		logger.Duration("took", time.Since(start)))

	return out, nil
}

// Create stores a new link for the session. The returned link carries
// the id assigned by the store.
func (r *Repository) Create(ctx context.Context, in domain.LinkInput, s *domain.Session) (domain.Link, error) {
	if s == nil {
		return domain.Link{}, &domain.MutationError{Op: "create", Err: domain.ErrNoSession}
	}
	if !in.Category.Valid() {
		return domain.Link{}, &domain.MutationError{Op: "create", Err: domain.ErrInvalidCategory}
	}

	start := time.Now()
	stored, err := r.store.Insert(ctx, domain.NewLink(in, s.UserID, r.now().UTC()))
	if err != nil {
		r.log.Warn("create failed", logger.String("owner", s.UserID), logger.Error(err))
		return domain.Link{}, &domain.MutationError{Op: "create", Err: err}
	}

	r.log.Debug("create",
		logger.String("owner", s.UserID),
		logger.String("id", stored.ID),
		logger.String("category", string(stored.Category)),
		logger.Duration("took", time.Since(start)))

	return stored, nil
}

// Update applies patch to the session's link id and returns the stored
// result. Only the patched fields change.
func (r *Repository) Update(ctx context.Context, s *domain.Session, id string, patch domain.LinkPatch) (domain.Link, error) {
	if s == nil {
		return domain.Link{}, &domain.MutationError{Op: "update", ID: id, Err: domain.ErrNoSession}
	}
	if patch.IsEmpty() {
		return domain.Link{}, &domain.MutationError{Op: "update", ID: id, Err: domain.ErrEmptyPatch}
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return domain.Link{}, &domain.MutationError{Op: "update", ID: id, Err: domain.ErrInvalidCategory}
	}

	start := time.Now()
	stored, err := r.store.Update(ctx, s.UserID, id, patch)
	if err != nil {
		r.log.Warn("update failed", logger.String("owner", s.UserID), logger.String("id", id), logger.Error(err))
		return domain.Link{}, &domain.MutationError{Op: "update", ID: id, Err: err}
	}

	r.log.Debug("update",
		logger.String("owner", s.UserID),
		logger.String("id", id),
		logger.Duration("took", time.Since(start)))

	return stored, nil
}

// Delete permanently removes the session's link id. Deleting a link that
// is already gone is an error.
func (r *Repository) Delete(ctx context.Context, s *domain.Session, id string) error {
	if s == nil {
		return &domain.MutationError{Op: "delete", ID: id, Err: domain.ErrNoSession}
	}

	start := time.Now()
	if err := r.store.Delete(ctx, s.UserID, id); err != nil {
		r.log.Warn("delete failed", logger.String("owner", s.UserID), logger.String("id", id), logger.Error(err))
		return &domain.MutationError{Op: "delete", ID: id, Err: err}
	}

	r.log.Debug("delete",
		logger.String("owner", s.UserID),
		logger.String("id", id),
		logger.Duration("took", time.Since(start)))

	return nil
}

// Search filters links by a case-insensitive substring. See domain.Search.
func (r *Repository) Search(links []domain.Link, term string) []domain.Link {
	return domain.Search(links, term)
}
