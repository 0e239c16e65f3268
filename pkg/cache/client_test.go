package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "greeting", "hello", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Get() = %q, want hello", got)
	}
}

func TestMemoryCacheMissingKey(t *testing.T) {
	c := NewMemoryCache()
	if _, err := c.Get(context.Background(), "absent"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "ephemeral", "value", -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := c.Get(ctx, "ephemeral"); err == nil {
		t.Error("expected error for expired key")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_ = c.Set(ctx, "a", "1", time.Minute)
	_ = c.Set(ctx, "b", "2", time.Minute)

	if err := c.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := c.Exists(ctx, "a", "b")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Exists() = %d, want 0", count)
	}
}

func TestMemoryCacheIncrement(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	first, err := c.Increment(ctx, "counter")
	if err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if first != 1 {
		t.Errorf("Increment() = %d, want 1", first)
	}

	second, err := c.Increment(ctx, "counter")
	if err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if second != 2 {
		t.Errorf("Increment() = %d, want 2", second)
	}
}

func TestMemoryCacheMarshalsStructs(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	payload := struct {
		Name string `json:"name"`
	}{Name: "trending"}

	if err := c.Set(ctx, "listing", payload, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, "listing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != `{"name":"trending"}` {
		t.Errorf("Get() = %s, want JSON payload", got)
	}
}

func TestDisabledRedisClientIsSilent(t *testing.T) {
	ctx := context.Background()

	client, err := NewRedisClient("", "", 0)
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}

	if err := client.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Errorf("Set() on disabled client error = %v", err)
	}
	if _, err := client.Get(ctx, "key"); err == nil {
		t.Error("Get() on disabled client should error")
	}
	if err := client.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() on disabled client error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on disabled client error = %v", err)
	}
}
