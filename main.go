package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pagewise/internal/app"
	"pagewise/internal/config"
	"pagewise/internal/events"
	"pagewise/internal/logger"

	"github.com/nsqio/go-nsq"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(os.Stdout, level)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// 2. Infrastructure: database, migrations, model client, producer
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer deps.Close()

	var producer events.Producer
	if deps.NSQProducer != nil {
		producer = deps.NSQProducer
	}

	// 3. Wiring
	a, err := app.New(cfg, deps.DB, deps.Generator, producer, log)
	if err != nil {
		return fmt.Errorf("app init failed: %w", err)
	}

	// 4. Worker (Run Consumer)
	if cfg.EnableRunEvents {
		consumer, err := nsq.NewConsumer(config.TopicFlowCompleted, config.ChannelRunRecorder, nsq.NewConfig())
		if err != nil {
			slog.Error("failed to create NSQ consumer for runs", "error", err)
		} else {
			consumer.AddHandler(a.RunConsumer)
			if err := consumer.ConnectToNSQLookupd(cfg.NSQLookupd); err != nil {
				slog.Error("failed to connect to NSQLookupd", "error", err)
			} else {
				slog.Info("NSQ run consumer connected", "topic", config.TopicFlowCompleted)
			}
			defer consumer.Stop()
		}
	}

	// 5. Start Server
	return a.Run(ctx)
}
