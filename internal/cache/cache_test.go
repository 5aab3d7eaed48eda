// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, listKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(context.Background(), host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()
}

func TestConnectValkeyUnreachable(t *testing.T) {
	_, err := ConnectValkey(context.Background(), "localhost", "1", "")
	if err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}

func TestListKey(t *testing.T) {
	if got := ListKey(Categories, 0); got != "list:categories:0" {
		t.Errorf("ListKey(categories, 0) = %q", got)
	}
	if got := ListKey(Recipes, 42); got != "list:recipes:42" {
		t.Errorf("ListKey(recipes, 42) = %q", got)
	}
}

// TestNilListCache verifies a nil cache behaves as permanently empty.
func TestNilListCache(t *testing.T) {
	var lc *ListCache
	ctx := context.Background()

	_, gen, ok := lc.Get(ctx, Categories)
	if ok {
		t.Error("nil cache should always miss")
	}
	lc.Set(ctx, Categories, gen, []byte("[]"))
	if err := lc.Invalidate(ctx); err != nil {
		t.Errorf("Invalidate on nil cache: %v", err)
	}
}

func TestListCacheSetGet(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListCache(client, time.Minute)
	ctx := context.Background()

	_, gen, ok := lc.Get(ctx, Recipes)
	if ok {
		t.Fatal("expected miss before set")
	}

	body := []byte(`[{"id":1,"title":"Soup"}]`)
	lc.Set(ctx, Recipes, gen, body)

	got, _, ok := lc.Get(ctx, Recipes)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(got) != string(body) {
		t.Errorf("body: got %s, want %s", got, body)
	}
}

func TestListCacheZeroGenerationNotStored(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListCache(client, time.Minute)
	ctx := context.Background()

	lc.Set(ctx, Recipes, Generation{}, []byte(`[]`))

	if _, _, ok := lc.Get(ctx, Recipes); ok {
		t.Error("set with zero generation should not be served")
	}
}

func TestListCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListCache(client, time.Minute)
	ctx := context.Background()

	_, catGen, _ := lc.Get(ctx, Categories)
	_, recGen, _ := lc.Get(ctx, Recipes)
	lc.Set(ctx, Categories, catGen, []byte(`[]`))
	lc.Set(ctx, Recipes, recGen, []byte(`[]`))

	if err := lc.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, _, ok := lc.Get(ctx, Categories); ok {
		t.Error("categories should be invalidated")
	}
	if _, _, ok := lc.Get(ctx, Recipes); ok {
		t.Error("recipes should be invalidated")
	}

	n, err := client.Get(ctx, generationKey).Int64()
	if err != nil {
		t.Fatalf("read generation: %v", err)
	}
	if n != 1 {
		t.Errorf("generation: got %d, want 1", n)
	}
}

// TestListCacheStaleSetAfterInvalidate covers a reader that queried the
// database before a write and stores its body after the write's
// invalidation. The late body must not be served.
func TestListCacheStaleSetAfterInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListCache(client, time.Minute)
	ctx := context.Background()

	_, staleGen, ok := lc.Get(ctx, Recipes)
	if ok {
		t.Fatal("expected miss before set")
	}

	if err := lc.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	lc.Set(ctx, Recipes, staleGen, []byte(`[{"id":1,"category_name":"Old"}]`))

	if got, _, ok := lc.Get(ctx, Recipes); ok {
		t.Errorf("stale body served after invalidate: %s", got)
	}

	_, freshGen, _ := lc.Get(ctx, Recipes)
	fresh := []byte(`[{"id":1,"category_name":"New"}]`)
	lc.Set(ctx, Recipes, freshGen, fresh)

	got, _, ok := lc.Get(ctx, Recipes)
	if !ok {
		t.Fatal("expected hit for current generation")
	}
	if string(got) != string(fresh) {
		t.Errorf("body: got %s, want %s", got, fresh)
	}
}

func TestListCacheTTL(t *testing.T) {
	client := testValkeyClient(t)
	lc := NewListCache(client, 0)
	if lc.ttl != DefaultListTTL {
		t.Errorf("ttl: got %v, want %v", lc.ttl, DefaultListTTL)
	}

	ctx := context.Background()
	_, gen, _ := lc.Get(ctx, Categories)
	lc.Set(ctx, Categories, gen, []byte(`[]`))
	ttl, err := client.TTL(ctx, ListKey(Categories, 0)).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > DefaultListTTL {
		t.Errorf("key ttl: got %v, want within (0, %v]", ttl, DefaultListTTL)
	}
}
