package rediscache

import (
	"context"
	"testing"
	"time"

	"gateparser/internal/gate/ratebus"

	"github.com/redis/go-redis/v9"
)

// go test -v --run TestRateKeyFormat
func TestRateKeyFormat(t *testing.T) {
	if got := rateKey("gateio", "BTC_USDT"); got != "rates:latest:gateio:BTC_USDT" {
		t.Errorf("unexpected key: %q", got)
	}
}

// go test -v --run TestSetAndGetRate
func TestSetAndGetRate(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cache := New(client, time.Minute)
	if err := cache.Ping(ctx); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	rate := ratebus.Rate{From: "BTC", To: "USDT", Buy: 50001.0, Sell: 49999.0}
	if err := cache.SaveRate(ctx, "gateio-test", rate); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := cache.GetRate(ctx, "gateio-test", "BTC_USDT")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if *got != rate {
		t.Errorf("expected %+v, got %+v", rate, *got)
	}

	// Unknown pairs miss instead of returning stale data.
	if _, err := cache.GetRate(ctx, "gateio-test", "DOGE_USDT"); err == nil {
		t.Error("expected miss for unknown pair")
	}
}
