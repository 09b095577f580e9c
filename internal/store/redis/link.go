package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

const maxTxRetries = 16

// Select returns an owner's links, newest first
func (s *Store) Select(ctx context.Context, q backend.Query) ([]domain.Link, error) {
	setKey := OwnerLinksKey(q.Owner)
	if q.Category != "" {
		setKey = OwnerCategoryKey(q.Owner, q.Category)
	}

	ids, err := s.client.ZRevRange(ctx, setKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link IDs: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Link{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = LinkKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}

	links := make([]domain.Link, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Row deleted between ZREVRANGE and MGET
			continue
		}
		var l domain.Link
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return nil, fmt.Errorf("failed to unmarshal link %s: %w", ids[i], err)
		}
		if l.Owner != q.Owner || (q.Category != "" && l.Category != q.Category) {
			continue
		}
		links = append(links, l)
	}

	return links, nil
}

// Insert stores a new link and indexes it under its owner
func (s *Store) Insert(ctx context.Context, l domain.Link) (domain.Link, error) {
	l.ID = s.newID()

	data, err := json.Marshal(l)
	if err != nil {
		return domain.Link{}, fmt.Errorf("failed to marshal link: %w", err)
	}

	member := redis.Z{Score: score(l), Member: l.ID}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, LinkKey(l.ID), data, 0)
		pipe.ZAdd(ctx, OwnerLinksKey(l.Owner), member)
		pipe.ZAdd(ctx, OwnerCategoryKey(l.Owner, l.Category), member)
		return nil
	})
	if err != nil {
		return domain.Link{}, fmt.Errorf("failed to save link: %w", err)
	}

	return l, nil
}

// Update applies a patch to a link owned by owner. The row and both
// category indexes change together under WATCH on the row key.
func (s *Store) Update(ctx context.Context, owner, id string, patch domain.LinkPatch) (domain.Link, error) {
	var updated domain.Link

	err := s.watchLink(ctx, id, func(tx *redis.Tx) error {
		current, err := get(ctx, tx, owner, id)
		if err != nil {
			return err
		}

		updated = patch.Apply(current)
		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("failed to marshal link: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, LinkKey(id), data, 0)
			if updated.Category != current.Category {
				pipe.ZRem(ctx, OwnerCategoryKey(owner, current.Category), id)
				pipe.ZAdd(ctx, OwnerCategoryKey(owner, updated.Category), redis.Z{Score: score(updated), Member: id})
			}
			return nil
		})
		return err
	})
	if err != nil {
		return domain.Link{}, err
	}

	return updated, nil
}

// Delete removes a link owned by owner
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	return s.watchLink(ctx, id, func(tx *redis.Tx) error {
		current, err := get(ctx, tx, owner, id)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, LinkKey(id))
			pipe.ZRem(ctx, OwnerLinksKey(owner), id)
			pipe.ZRem(ctx, OwnerCategoryKey(owner, current.Category), id)
			return nil
		})
		return err
	})
}

// watchLink runs fn under WATCH on the link row, retrying when another
// writer touched the row before EXEC.
func (s *Store) watchLink(ctx context.Context, id string, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.client.Watch(ctx, fn, LinkKey(id))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to save link: %w", err)
		}
		return err
	}
	return fmt.Errorf("failed to save link %s: too much contention", id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// get loads a row and applies the owner check
func get(ctx context.Context, c getter, owner, id string) (domain.Link, error) {
	data, err := c.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Link{}, domain.ErrNotFound
		}
		return domain.Link{}, fmt.Errorf("failed to get link: %w", err)
	}

	var l domain.Link
	if err := json.Unmarshal(data, &l); err != nil {
		return domain.Link{}, fmt.Errorf("failed to unmarshal link: %w", err)
	}
	if l.Owner != owner {
		return domain.Link{}, domain.ErrNotFound
	}

	return l, nil
}

func score(l domain.Link) float64 {
	return float64(l.CreatedAt.UnixMicro())
}
