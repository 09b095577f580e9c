// Package view holds per-user presentation state on top of the link
// repository: one CategoryView per (user, filter) and the dashboard
// summary.
package view

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// ErrSuperseded is returned by Load when a newer load or a local
// mutation happened while the request was in flight. Its result is
// dropped.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Repository is the part of links.Repository a view needs.
type Repository interface {
	List(ctx context.Context, filter domain.CategoryFilter, s *domain.Session) ([]domain.Link, error)
	Create(ctx context.Context, in domain.LinkInput, s *domain.Session) (domain.Link, error)
	Update(ctx context.Context, s *domain.Session, id string, patch domain.LinkPatch) (domain.Link, error)
	Delete(ctx context.Context, s *domain.Session, id string) error
}

// State is a point-in-time copy of a CategoryView.
type State struct {
	Filter  domain.CategoryFilter `json:"category"`
	Search  string                `json:"search"`
	Editing string                `json:"editing,omitempty"`
	Error   string                `json:"error,omitempty"`
	Loaded  bool                  `json:"loaded"`
	Total   int                   `json:"total"`
	Links   []domain.Link         `json:"links"` // search applied
}

// CategoryView binds one filtered listing to a search term and the id
// of the link being edited.
type CategoryView struct {
	repo   Repository
	filter domain.CategoryFilter
	now    func() time.Time

	mu       sync.Mutex
	ticket   uint64 // last issued load or local write
	links    []domain.Link
	search   string
	editing  string
	lastErr  string
	loaded   bool
	lastUsed time.Time
}

// NewCategoryView creates an empty view. Call Load to populate it.
func NewCategoryView(repo Repository, filter domain.CategoryFilter) *CategoryView {
	return newCategoryView(repo, filter, time.Now)
}

func newCategoryView(repo Repository, filter domain.CategoryFilter, now func() time.Time) *CategoryView {
	return &CategoryView{
		repo:     repo,
		filter:   filter,
		now:      now,
		links:    []domain.Link{},
		lastUsed: now(),
	}
}

// Filter returns the listing filter of the view.
func (v *CategoryView) Filter() domain.CategoryFilter { return v.filter }

// Load fetches the listing. Only the newest request may replace the
// view's links; older responses return ErrSuperseded.
func (v *CategoryView) Load(ctx context.Context, s *domain.Session) error {
	v.mu.Lock()
	v.ticket++
	ticket := v.ticket
	v.lastUsed = v.now()
	v.mu.Unlock()

	got, err := v.repo.List(ctx, v.filter, s)

	v.mu.Lock()
	defer v.mu.Unlock()

	if ticket != v.ticket {
		return ErrSuperseded
	}
	if err != nil {
		v.lastErr = err.Error()
		return err
	}

	v.links = got
	v.lastErr = ""
	v.loaded = true
	return nil
}

// SetSearch replaces the search term.
func (v *CategoryView) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = term
	v.lastUsed = v.now()
}

// StartEdit marks id as the link being edited.
func (v *CategoryView) StartEdit(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = id
	v.lastUsed = v.now()
}

// CancelEdit clears the edit marker.
func (v *CategoryView) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = ""
}

// Create adds a link and prepends it when it passes the view's filter.
func (v *CategoryView) Create(ctx context.Context, s *domain.Session, in domain.LinkInput) (domain.Link, error) {
	created, err := v.repo.Create(ctx, in, s)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.fail(err)
		return domain.Link{}, err
	}

	v.commit()
	if v.filter.Matches(created.Category) {
		v.links = append([]domain.Link{created}, v.links...)
	}
	return created, nil
}

// Update edits a link and replaces the local copy with the stored one.
// A link moved out of the view's category disappears from it and one
// moved into it appears.
func (v *CategoryView) Update(ctx context.Context, s *domain.Session, id string, patch domain.LinkPatch) (domain.Link, error) {
	updated, err := v.repo.Update(ctx, s, id, patch)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.fail(err)
		return domain.Link{}, err
	}

	v.commit()
	i := slices.IndexFunc(v.links, func(l domain.Link) bool { return l.ID == id })
	switch {
	case i >= 0 && v.filter.Matches(updated.Category):
		v.links[i] = updated
	case i >= 0:
		v.links = slices.Delete(v.links, i, i+1)
	case v.filter.Matches(updated.Category):
		// Moved in from another category; keep newest first.
		at := slices.IndexFunc(v.links, func(l domain.Link) bool { return l.CreatedAt.Before(updated.CreatedAt) })
		if at < 0 {
			at = len(v.links)
		}
		v.links = slices.Insert(v.links, at, updated)
	}
	if v.editing == id {
		v.editing = ""
	}
	return updated, nil
}

// Delete removes a link.
func (v *CategoryView) Delete(ctx context.Context, s *domain.Session, id string) error {
	err := v.repo.Delete(ctx, s, id)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.fail(err)
		return err
	}

	v.commit()
	v.links = slices.DeleteFunc(v.links, func(l domain.Link) bool { return l.ID == id })
	if v.editing == id {
		v.editing = ""
	}
	return nil
}

// State returns a copy of the view.
func (v *CategoryView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return State{
		Filter:  v.filter,
		Search:  v.search,
		Editing: v.editing,
		Error:   v.lastErr,
		Loaded:  v.loaded,
		Total:   len(v.links),
		Links:   domain.Search(slices.Clone(v.links), v.search),
	}
}

// LastUsed returns when the view was last loaded or interacted with.
func (v *CategoryView) LastUsed() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastUsed
}

// commit records a confirmed local write. Loads issued before it would
// overwrite the write with older data, so they are superseded. Callers
// hold v.mu.
func (v *CategoryView) commit() {
	v.ticket++
	v.lastErr = ""
	v.lastUsed = v.now()
}

// fail keeps the prior links and exposes the error. Callers hold v.mu.
func (v *CategoryView) fail(err error) {
	v.lastErr = err.Error()
	v.lastUsed = v.now()
}
