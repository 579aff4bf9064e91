package parser

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gateparser/config"
	"gateparser/internal/gate/display"
	"gateparser/internal/gate/memorystore"
	"gateparser/internal/gate/ratebus"
	"gateparser/internal/gate/retention"
	"gateparser/internal/gate/snapshot"
	"gateparser/internal/gate/stream"
	"gateparser/pkg/gate"
	"gateparser/pkg/storage/postgres"
	"gateparser/pkg/storage/rediscache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statusInterval = 30 * time.Second
	consumerBuffer = 256
	snapshotMaxAge = 24 * time.Hour
)

// Options tunes how the pipeline publishes rates.
type Options struct {
	// OnRate, when set, replaces the event bus as the publisher sink:
	// rates go to the callback only and Bus subscribers see nothing
	// from this parser.
	OnRate ratebus.Callback
}

// Parser owns the full pipeline: pair list, WebSocket client, message
// normalizer, rate bus and the optional storage consumers.
type Parser struct {
	ws     *gate.WSClient
	bus    *ratebus.Bus
	pg     *postgres.PostgresClient
	rdb    *redis.Client
	cancel context.CancelFunc
	logger *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

// Start wires and launches the pipeline with default options.
func Start(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Parser, error) {
	return StartWithOptions(ctx, cfg, logger, Options{})
}

// StartWithOptions wires and launches the pipeline. The pair fetch is
// the only network call awaited here; the WebSocket connection
// establishes (and re-establishes) itself in the background.
func StartWithOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*Parser, error) {
	ctx, cancel := context.WithCancel(ctx)

	bus := ratebus.NewBus()
	p := &Parser{bus: bus, cancel: cancel, logger: logger}

	var sink ratebus.Sink = ratebus.NewBusSink(bus)
	if opts.OnRate != nil {
		sink = ratebus.NewCallbackSink(opts.OnRate)
	}
	pub := ratebus.NewPublisher(cfg.Rates.Source, sink)

	// Load the subscription set via REST, falling back to defaults
	restClient := gate.NewRESTClient(cfg.Gate.REST.BaseURL, cfg.Gate.REST.Timeout)
	loader := &snapshot.PairLoader{
		RestClient: restClient,
		Timeout:    cfg.Gate.REST.Timeout,
		Logger:     logger,
	}
	pairStore := memorystore.NewPairStore()
	pairStore.SetAll(loader.LoadPairs(ctx))

	// Optional latest-rate snapshot in Postgres
	if cfg.Postgres.Enabled {
		pg, err := postgres.InitializeAndMigrateRateStore(cfg.Postgres, cfg.Log.Environment, true)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to initialize rate store: %w", err)
		}
		p.pg = pg
		go storeRates(ctx, bus.Subscribe(consumerBuffer), pg, "postgres", logger)

		pruner := &retention.MidnightPruner{
			MaxAge: snapshotMaxAge,
			Prune:  pg.DeleteStaleRates,
			Logger: logger,
		}
		pruner.Start(ctx)
	}

	// Optional latest-rate cache in Redis
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache := rediscache.New(rdb, cfg.Redis.TTL)

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := cache.Ping(pingCtx)
		pingCancel()
		if err != nil {
			cancel()
			if p.pg != nil {
				p.pg.Close()
			}
			rdb.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		p.rdb = rdb
		go storeRates(ctx, bus.Subscribe(consumerBuffer), cache, "redis", logger)
	}

	// Normalize frames into rates, printing a console line per update
	prices := memorystore.NewPriceStore()
	out := display.NewWriter(os.Stdout)

	ws := gate.NewWSClient(cfg.Gate.WS.URL, pairStore, logger)
	ws.SetHandshakeTimeout(cfg.Gate.WS.Timeout)
	ws.SetMessageHandler(stream.MakeMessageHandler(logger, prices, pub, out))
	p.ws = ws

	// Periodically report stream state for visibility
	go logStatus(ctx, ws, pairStore, prices, logger)

	ws.Start()
	logger.Info("rate parser started",
		zap.String("source", cfg.Rates.Source),
		zap.Int("pairs", pairStore.Count()))

	return p, nil
}

// Bus exposes the event bus so embedding code can attach consumers.
func (p *Parser) Bus() *ratebus.Bus {
	return p.bus
}

// Close shuts the pipeline down. Safe to call more than once.
func (p *Parser) Close() error {
	p.closeOnce.Do(func() {
		p.cancel()
		if p.ws != nil {
			p.closeErr = p.ws.Close()
		}
		if p.pg != nil {
			if err := p.pg.Close(); err != nil && p.closeErr == nil {
				p.closeErr = err
			}
		}
		if p.rdb != nil {
			if err := p.rdb.Close(); err != nil && p.closeErr == nil {
				p.closeErr = err
			}
		}
		p.logger.Info("rate parser stopped")
	})
	return p.closeErr
}
