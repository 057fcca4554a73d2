package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/alumni-labs/bolsa/pkg/cv"
)

// CVDraftCache keeps the unstripped CV snapshot per owner, mirroring the
// browser-local draft the builder used to keep in localStorage.
type CVDraftCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCVDraftCache(rdb *redis.Client) *CVDraftCache {
	return &CVDraftCache{rdb: rdb, ttl: 30 * 24 * time.Hour}
}

func draftKey(ownerID uuid.UUID) string { return "cv:draft:" + ownerID.String() }

func (c *CVDraftCache) Get(ctx context.Context, ownerID uuid.UUID) (cv.CV, error) {
	data, err := c.rdb.Get(ctx, draftKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cv.CV{}, cv.ErrNoDraft
		}
		return cv.CV{}, err
	}
	var doc cv.CV
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupted draft is the same as no draft.
		return cv.CV{}, cv.ErrNoDraft
	}
	return doc, nil
}

func (c *CVDraftCache) Put(ctx context.Context, ownerID uuid.UUID, doc cv.CV) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, draftKey(ownerID), data, c.ttl).Err()
}

func (c *CVDraftCache) Delete(ctx context.Context, ownerID uuid.UUID) error {
	return c.rdb.Del(ctx, draftKey(ownerID)).Err()
}

// SkillOptionCache keeps per-owner custom option lists for the categorized
// skill selectors.
type SkillOptionCache struct {
	rdb *redis.Client
}

func NewSkillOptionCache(rdb *redis.Client) *SkillOptionCache {
	return &SkillOptionCache{rdb: rdb}
}

func optionKey(ownerID uuid.UUID, category string) string {
	return "cv:skill-options:" + ownerID.String() + ":" + category
}

func (c *SkillOptionCache) Get(ctx context.Context, ownerID uuid.UUID, category string) ([]string, error) {
	data, err := c.rdb.Get(ctx, optionKey(ownerID, category)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, err
	}
	var options []string
	if err := json.Unmarshal(data, &options); err != nil {
		return []string{}, nil
	}
	return options, nil
}

func (c *SkillOptionCache) Put(ctx context.Context, ownerID uuid.UUID, category string, options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, optionKey(ownerID, category), data, 0).Err()
}
