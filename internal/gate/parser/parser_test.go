package parser

import (
	"context"
	"testing"
	"time"

	"gateparser/config"
	"gateparser/internal/gate/ratebus"
	"gateparser/pkg/storage"

	"go.uber.org/zap"
)

func offlineConfig() *config.Config {
	cfg := &config.Config{}
	// No listeners on these ports: the pair fetch falls back to defaults
	// and the WebSocket keeps retrying in the background.
	cfg.Gate.REST.BaseURL = "http://127.0.0.1:1"
	cfg.Gate.REST.Timeout = 500 * time.Millisecond
	cfg.Gate.WS.URL = "ws://127.0.0.1:1"
	cfg.Gate.WS.Timeout = 500 * time.Millisecond
	cfg.Rates.Source = "gateio"
	cfg.Log.Environment = "dev"
	return cfg
}

// go test -v --run TestStartAndCloseOffline
func TestStartAndCloseOffline(t *testing.T) {
	p, err := Start(context.Background(), offlineConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if p.Bus() == nil {
		t.Error("expected a bus on the running parser")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
}

// go test -v --run TestStoreRatesConsumesBus
func TestStoreRatesConsumesBus(t *testing.T) {
	bus := ratebus.NewBus()
	events := bus.Subscribe(8)
	store := storage.NewMemoryRateStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go storeRates(ctx, events, store, "memory", zap.NewNop())

	bus.Publish(ratebus.Event{
		Name:   ratebus.EventUpdateRate,
		Source: "gateio",
		Rate:   ratebus.Rate{From: "BTC", To: "USDT", Buy: 50001.0, Sell: 49999.0},
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		if rate, ok := store.RateFor("gateio", "BTC_USDT"); ok {
			if rate.Buy != 50001.0 {
				t.Errorf("unexpected stored rate: %+v", rate)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("rate never reached the store")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
