package main

import (
	"context"
	"os/signal"
	"syscall"

	"gateparser/config"
	"gateparser/internal/gate/parser"
	"gateparser/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run parser
	p, err := parser.Start(ctx, cfg, log)
	if err != nil {
		log.Fatal("parser failed", zap.Error(err))
	}

	<-ctx.Done()
	log.Info("shutting down")
	if err := p.Close(); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
}
