package postgres_test

import (
	"context"
	"testing"
	"time"

	"gateparser/internal/gate/ratebus"
	"gateparser/pkg/storage/postgres"
)

// go test -v --run TestToRateRecord
func TestToRateRecord(t *testing.T) {
	record := postgres.ToRateRecord("gateio", ratebus.Rate{
		From: "BTC",
		To:   "USDT",
		Buy:  50001.0,
		Sell: 49999.0,
	})

	if record.Source != "gateio" || record.Pair != "BTC_USDT" {
		t.Errorf("unexpected identity columns: %+v", record)
	}
	if record.FromAsset != "BTC" || record.ToAsset != "USDT" {
		t.Errorf("unexpected asset columns: %+v", record)
	}
	if record.Buy != 50001.0 || record.Sell != 49999.0 {
		t.Errorf("unexpected prices: %+v", record)
	}
}

// go test -v --run TestRateUpsert
func TestRateUpsert(t *testing.T) {
	client := connectOrSkip(t)
	defer client.Close()

	ctx := context.Background()

	if err := client.AutoMigrateRateRecord(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	source := "gateio-test"
	rate := ratebus.Rate{From: "BTC", To: "USDT", Buy: 50001.0, Sell: 49999.0}

	if err := client.SaveRate(ctx, source, rate); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := client.GetRate(ctx, source, "BTC_USDT")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Buy != 50001.0 || got.Sell != 49999.0 {
		t.Errorf("unexpected rate values: %+v", got)
	}

	// A second save for the same pair must overwrite, not add a row.
	rate.Buy, rate.Sell = 50101.0, 50099.0
	if err := client.SaveRate(ctx, source, rate); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	updated, err := client.GetRate(ctx, source, "BTC_USDT")
	if err != nil {
		t.Fatalf("get after upsert failed: %v", err)
	}
	if updated.Buy != 50101.0 || updated.Sell != 50099.0 {
		t.Errorf("row was not overwritten: %+v", updated)
	}
	if updated.ID != got.ID {
		t.Errorf("upsert created a new row: id %d became %d", got.ID, updated.ID)
	}

	// Pruning with a future cutoff removes the row.
	if err := client.DeleteStaleRates(ctx, time.Now().Add(time.Hour)); err != nil {
		t.Errorf("delete failed: %v", err)
	}
	if _, err := client.GetRate(ctx, source, "BTC_USDT"); err == nil {
		t.Error("expected error after delete, got nil")
	}
}
