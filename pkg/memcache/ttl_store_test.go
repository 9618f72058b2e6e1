package mem_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	mem "edupath/pkg/memcache"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := mem.NewMemoryStore()

	if err := s.Set(ctx, "a", "1", 50*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "a"); !ok || v != "1" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := mem.NewMemoryStore()
	_ = s.Set(ctx, "k", "v", time.Minute)
	_ = s.Delete(ctx, "k")
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("expected entry to be gone")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	s := mem.NewRedisStore(client, "edupath:")

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "revoked:abc", "1", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("edupath:revoked:abc") {
		t.Fatal("expected prefixed key in redis")
	}
	if v, ok, err := s.Get(ctx, "revoked:abc"); err != nil || !ok || v != "1" {
		t.Fatalf("unexpected get %q %v %v", v, ok, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, "revoked:abc"); ok {
		t.Fatal("expected key to expire")
	}

	_ = s.Set(ctx, "x", "y", time.Minute)
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "x"); ok {
		t.Fatal("expected deleted key to miss")
	}
}
