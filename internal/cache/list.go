// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go caches the JSON bodies of the category and recipe list
// endpoints. Entries are keyed by a generation counter that every write
// bumps, because a category rename or delete changes what the recipe
// listing shows. A body read from the database before a write is stored
// under the old generation and is never served afterwards.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"recipebox/internal/metrics"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached list bodies.
	listKeyPrefix = "list:"

	// generationKey holds the counter every write increments.
	generationKey = listKeyPrefix + "gen"

	// DefaultListTTL bounds how long superseded generations linger.
	DefaultListTTL = 60 * time.Second
)

// Cached resources.
const (
	Categories = "categories"
	Recipes    = "recipes"
)

// Generation identifies the state of the catalogue a cached body was read
// from. The zero value never matches a stored entry.
type Generation struct {
	n     int64
	valid bool
}

// ListCache stores list response bodies in Valkey. A nil *ListCache is a
// valid, always-missing cache.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// ListKey returns the Valkey key for a resource at generation n.
func ListKey(resource string, n int64) string {
	return listKeyPrefix + resource + ":" + strconv.FormatInt(n, 10)
}

// Get returns the cached body for resource at the current generation. On
// a miss the returned Generation must be passed to Set once the body has
// been read from the database. Callers read the generation before the
// database, so a write that lands in between makes the Set harmless.
func (lc *ListCache) Get(ctx context.Context, resource string) ([]byte, Generation, bool) {
	if lc == nil {
		return nil, Generation{}, false
	}

	n, err := lc.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		n, err = 0, nil
	}
	if err != nil {
		metrics.ListCacheLookups.WithLabelValues(resource, "error").Inc()
		slog.Warn("list cache generation error", "resource", resource, "error", err)
		return nil, Generation{}, false
	}
	gen := Generation{n: n, valid: true}

	val, err := lc.client.Get(ctx, ListKey(resource, n)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ListCacheLookups.WithLabelValues(resource, "miss").Inc()
		return nil, gen, false
	}
	if err != nil {
		metrics.ListCacheLookups.WithLabelValues(resource, "error").Inc()
		slog.Warn("list cache get error", "resource", resource, "error", err)
		return nil, Generation{}, false
	}
	metrics.ListCacheLookups.WithLabelValues(resource, "hit").Inc()
	return val, gen, true
}

// Set stores body for resource under gen with the configured TTL. It does
// nothing for the zero Generation.
func (lc *ListCache) Set(ctx context.Context, resource string, gen Generation, body []byte) {
	if lc == nil || !gen.valid {
		return
	}
	if err := lc.client.Set(ctx, ListKey(resource, gen.n), body, lc.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "resource", resource, "error", err)
	}
}

// Invalidate moves every list to a new generation. If the counter cannot
// be bumped the current entries are deleted instead; an error means
// neither worked.
func (lc *ListCache) Invalidate(ctx context.Context) error {
	if lc == nil {
		return nil
	}
	incrErr := lc.client.Incr(ctx, generationKey).Err()
	if incrErr == nil {
		slog.Debug("list cache invalidated")
		return nil
	}

	n, err := lc.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		n, err = 0, nil
	}
	if err == nil {
		err = lc.client.Del(ctx, ListKey(Categories, n), ListKey(Recipes, n)).Err()
	}
	if err != nil {
		slog.Error("list cache invalidate failed, lists may be stale until they expire",
			"incr_error", incrErr,
			"error", err,
		)
		return errors.Join(incrErr, err)
	}
	slog.Warn("list cache generation bump failed, entries deleted", "error", incrErr)
	return nil
}
