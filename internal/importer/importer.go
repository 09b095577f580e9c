// Package importer turns a Homepage bookmarks.yaml document into links.
package importer

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// Creator is the part of links.Repository the importer needs.
type Creator interface {
	Create(ctx context.Context, in domain.LinkInput, s *domain.Session) (domain.Link, error)
}

// Result reports what an import did.
type Result struct {
	Imported int           `json:"imported"`
	Links    []domain.Link `json:"links"`
	Skipped  []Skipped     `json:"skipped"`
}

// Importer creates links from bookmarks documents.
type Importer struct {
	repo   Creator
	mapper *Mapper
	log    logger.Logger
}

// New creates an Importer.
func New(repo Creator, log logger.Logger) *Importer {
	return &Importer{repo: repo, mapper: NewMapper(), log: log}
}

// Import creates one link per usable entry of config, in document order.
// The first failed create stops the import; the result still lists what
// was created before it.
func (i *Importer) Import(ctx context.Context, s *domain.Session, config BookmarksConfig, fallback domain.Category) (Result, error) {
	if s == nil {
		return Result{}, &domain.MutationError{Op: "create", Err: domain.ErrNoSession}
	}

	inputs, skipped := i.mapper.Map(config, fallback)
	res := Result{Links: make([]domain.Link, 0, len(inputs)), Skipped: skipped}

	for _, in := range inputs {
		created, err := i.repo.Create(ctx, in, s)
		if err != nil {
			i.log.Warn("import aborted",
				logger.String("owner", s.UserID),
				logger.Int("imported", res.Imported),
				logger.Error(err))
			return res, fmt.Errorf("import stopped after %d links: %w", res.Imported, err)
		}
		res.Links = append(res.Links, created)
		res.Imported++
	}

	i.log.Info("import finished",
		logger.String("owner", s.UserID),
		logger.Int("imported", res.Imported),
		logger.Int("skipped", len(res.Skipped)))

	return res, nil
}
