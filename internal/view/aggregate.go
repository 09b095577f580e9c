package view

import (
	"context"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// RecentLimit is how many of the newest links the dashboard shows.
const RecentLimit = 6

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	domain.CategoryInfo
	Count int `json:"count"`
}

// Summary is the cross-category dashboard.
type Summary struct {
	SignedIn            bool            `json:"signedIn"`
	Email               string          `json:"email,omitempty"`
	Total               int             `json:"total"`
	Categories          []CategoryCount `json:"categories"`
	CategoriesWithLinks int             `json:"categoriesWithLinks"`
	Recent              []domain.Link   `json:"recent"`
	Search              string          `json:"search"`
	Results             []domain.Link   `json:"results"`
}

// AggregateView summarizes the unfiltered listing.
type AggregateView struct {
	repo Repository
}

// NewAggregateView creates an AggregateView.
func NewAggregateView(repo Repository) *AggregateView {
	return &AggregateView{repo: repo}
}

// Load lists every link of the session and summarizes it.
func (a *AggregateView) Load(ctx context.Context, s *domain.Session, term string) (Summary, error) {
	all, err := a.repo.List(ctx, domain.FilterAll, s)
	if err != nil {
		return Summary{}, err
	}

	sum := Summarize(all, term)
	if s != nil {
		sum.SignedIn = true
		sum.Email = s.Email
	}
	return sum, nil
}

// Summarize builds the dashboard from links ordered newest first.
func Summarize(links []domain.Link, term string) Summary {
	counts := make(map[domain.Category]int, len(links))
	for _, l := range links {
		counts[l.Category]++
	}

	infos := domain.Categories()
	rows := make([]CategoryCount, 0, len(infos))
	withLinks := 0
	for _, info := range infos {
		n := counts[info.ID]
		if n > 0 {
			withLinks++
		}
		rows = append(rows, CategoryCount{CategoryInfo: info, Count: n})
	}

	recent := links
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	return Summary{
		Total:               len(links),
		Categories:          rows,
		CategoriesWithLinks: withLinks,
		Recent:              append([]domain.Link{}, recent...),
		Search:              term,
		Results:             domain.Search(links, term),
	}
}
