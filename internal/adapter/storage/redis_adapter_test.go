package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/storekit/checkout/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestShopCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	// Setup
	client.Del(ctx, shopKey)

	shop, err := adapter.GetShop(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop != nil {
		t.Fatalf("expected miss, got %+v", shop)
	}

	want := &domain.Shop{Name: "Snow Devil", Currency: "CAD", Domain: "snowdevil.example.com"}
	if err := adapter.SetShop(ctx, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := adapter.GetShop(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Name != want.Name || got.Currency != want.Currency {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSetOnce(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	// Setup
	client.Del(ctx, "checkout:expired:test-chk")

	ok, err := adapter.SetOnce(ctx, "checkout:expired:test-chk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected first set to succeed")
	}

	ok, err = adapter.SetOnce(ctx, "checkout:expired:test-chk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second set to report already set")
	}
}
