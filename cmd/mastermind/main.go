// Command mastermind plays the code-breaking game in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"example.com/mastermind/internal/cli"
	"example.com/mastermind/internal/config"
	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/secret"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mastermind:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.LoadGameFromEnv()
	if err != nil {
		return err
	}
	cfg, ccfg, err := parseFlags(os.Args[1:], cfg)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	// game output owns stdout
	log := cfg.LoggerTo(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui := cli.NewUI(os.Stdin, os.Stdout)
	ctrl := cli.NewController(ccfg, ui, secret.New(cfg.Secret, log), nil, log)
	slog.SetDefault(log)
	return ctrl.Run(ctx)
}

// parseFlags layers command-line flags over the environment config. Every
// flag defaults to its environment value.
func parseFlags(args []string, cfg config.Config) (config.Config, cli.Config, error) {
	fs := flag.NewFlagSet("mastermind", flag.ContinueOnError)
	var (
		difficulty = fs.String("difficulty", "", "easy|normal|hard or 1-3; asks when empty")
		attempts   = fs.Int("attempts", cfg.Game.MaxAttempts, "attempts per game")
		hints      = fs.Int("hints", cfg.Game.Hints, "hints per game")
		offline    = fs.Bool("offline", cfg.Secret.Offline, "generate secrets locally instead of random.org")
		logFormat  = fs.String("log-format", cfg.Log.Format, "text|json")
		logLevel   = fs.String("log-level", cfg.Log.Level.String(), "debug|info|warn|error")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, cli.Config{}, err
	}

	cfg.Game.MaxAttempts = *attempts
	cfg.Game.Hints = *hints
	cfg.Secret.Offline = *offline
	cfg.Log.Format = *logFormat
	if err := cfg.Log.Level.UnmarshalText([]byte(*logLevel)); err != nil {
		return config.Config{}, cli.Config{}, fmt.Errorf("-log-level: %w", err)
	}
	if err := cfg.ValidateGame(); err != nil {
		return config.Config{}, cli.Config{}, err
	}

	ccfg := cli.Config{
		MaxAttempts:       cfg.Game.MaxAttempts,
		Hints:             cfg.Game.Hints,
		DefaultDifficulty: cfg.Game.Difficulty,
	}
	if *difficulty != "" {
		d, err := game.ParseDifficulty(*difficulty)
		if err != nil {
			return config.Config{}, cli.Config{}, err
		}
		ccfg.Difficulty = &d
	}
	return cfg, ccfg, nil
}
