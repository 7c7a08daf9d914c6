package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"example.com/mastermind/internal/app"
	"example.com/mastermind/internal/config"
	"example.com/mastermind/internal/migrate"
)

func main() {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.RunMigrations {
		fsys, err := migrate.Source(cfg.Postgres.MigrationsDir)
		if err != nil {
			log.Error("migrations source", "err", err)
			os.Exit(1)
		}
		if err := migrate.Up(ctx, cfg.Postgres.URL, fsys, log); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("init", "err", err)
		os.Exit(1)
	}
	if err := a.Run(ctx); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
