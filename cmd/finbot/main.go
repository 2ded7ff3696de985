package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"finbot/internal/advice"
	"finbot/internal/chat"
	"finbot/internal/cli"
	apphttp "finbot/internal/http"
	"finbot/internal/ledger"
	mem "finbot/internal/ledger/memory"
	"finbot/internal/notify"
	"finbot/internal/profile"
	"finbot/internal/quote"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger.Logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	// Choose ledger backend (default: memory). Both are ephemeral unless
	// SQLITE_DB_PATH points at a file.
	var store ledger.Store
	switch cfg.DataBackend {
	case "sqlite":
		repo := cli.InitSQLite(logger.Logger, cfg.SQLiteDBPath)
		defer repo.Close()
		store = repo
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		store = mem.New()
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	}

	// Optional AMQP notifications for committed ledger entries.
	var notifier ledger.Notifier
	if cfg.AMQPURL != "" {
		client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		notifier = client
		logger.Info("Ledger notifications enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	svc := ledger.NewService(store, notifier)
	profiles := profile.NewStore()
	quotes := quote.NewClient(cfg.QuoteAPIURL, cfg.QuoteAPIKey, cfg.QuoteTimeout)

	router := chat.NewRouter(
		func() string { return advice.Investment(profiles.Get()) },
		func() string {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			totals, err := svc.Totals(ctx)
			if err != nil {
				logger.Error("Ledger totals error", "error", err)
				return advice.NeedIncomeMessage
			}
			return advice.Savings(profiles.Get(), totals)
		},
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	srv := apphttp.NewServer(":"+cfg.Port, svc, profiles, router, quotes)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 15 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting finbot server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
