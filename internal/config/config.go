package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/secret"
)

// Config describes all runtime settings for the server and the terminal game.
// Loaded once in main, validated, then passed down explicitly.
type Config struct {
	Env string // dev|stage|prod

	Log struct {
		Format string // text|json
		Level  slog.Level
	}

	HTTP struct {
		Addr              string
		ReadHeaderTimeout time.Duration
		ReadTimeout       time.Duration
		WriteTimeout      time.Duration
		IdleTimeout       time.Duration
		ShutdownTimeout   time.Duration
	}

	Postgres struct {
		URL           string
		RunMigrations bool
		MigrationsDir string
	}

	Redis struct {
		Addr    string
		DB      int
		GameTTL time.Duration
	}

	Auth struct {
		Secret   string
		TokenTTL time.Duration
	}

	Game struct {
		MaxAttempts int
		Hints       int
		Difficulty  game.Difficulty
	}

	Secret secret.Settings
}

// LoadFromEnv reads the full server configuration and validates all of it.
func LoadFromEnv() (Config, error) {
	c, err := load()
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadGameFromEnv reads the same variables but only checks what a local
// game uses, so the terminal client starts without server credentials.
func LoadGameFromEnv() (Config, error) {
	c, err := load()
	if err != nil {
		return Config{}, err
	}
	if err := c.ValidateGame(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func load() (Config, error) {
	var c Config

	c.Env = envString("APP_ENV", "dev")
	c.Log.Format = envString("LOG_FORMAT", "text")
	if err := c.Log.Level.UnmarshalText([]byte(envString("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	port := envString("PORT", "8080")
	c.HTTP.Addr = envString("HTTP_ADDR", ":"+port)
	c.HTTP.ReadHeaderTimeout = envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	c.HTTP.ReadTimeout = envDuration("HTTP_READ_TIMEOUT", 0)
	c.HTTP.WriteTimeout = envDuration("HTTP_WRITE_TIMEOUT", 0)
	c.HTTP.IdleTimeout = envDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.HTTP.ShutdownTimeout = envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	c.Postgres.URL = envString("DATABASE_URL", "postgres://mm:mm@localhost:5432/mastermind?sslmode=disable")
	c.Postgres.RunMigrations = envBool("RUN_MIGRATIONS", false)
	c.Postgres.MigrationsDir = envString("MIGRATIONS_DIR", "") // empty: embedded

	c.Redis.Addr = envString("REDIS_ADDR", "localhost:6379")
	c.Redis.DB = envInt("REDIS_DB", 0)
	c.Redis.GameTTL = envDuration("GAME_TTL", 24*time.Hour)

	c.Auth.Secret = envString("JWT_SECRET", "dev-secret-change-me")
	c.Auth.TokenTTL = envDuration("JWT_TTL", 24*time.Hour)

	c.Game.MaxAttempts = envInt("GAME_MAX_ATTEMPTS", game.DefaultMaxAttempts)
	c.Game.Hints = envInt("GAME_HINTS", game.DefaultHints)
	d, err := game.ParseDifficulty(envString("GAME_DIFFICULTY", "normal"))
	if err != nil {
		return Config{}, fmt.Errorf("GAME_DIFFICULTY: %w", err)
	}
	c.Game.Difficulty = d

	c.Secret.RandomOrgURL = envString("RANDOM_ORG_URL", "https://www.random.org")
	c.Secret.Timeout = envDuration("RANDOM_ORG_TIMEOUT", 10*time.Second)
	c.Secret.Attempts = envInt("SECRET_ATTEMPTS", 3)
	c.Secret.RetryDelay = envDuration("SECRET_RETRY_DELAY", time.Second)
	c.Secret.Offline = envBool("SECRET_OFFLINE", false)
	return c, nil
}

// Validate checks the server sections on top of ValidateGame.
func (c Config) Validate() error {
	if err := c.ValidateGame(); err != nil {
		return err
	}
	if c.HTTP.Addr == "" {
		return errors.New("HTTP addr is empty")
	}
	if c.Postgres.URL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	if c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is empty")
	}
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.Env != "dev" && c.Auth.Secret == "dev-secret-change-me" {
		return fmt.Errorf("refuse to run with default JWT_SECRET in %s", c.Env)
	}
	return nil
}

func (c Config) ValidateGame() error {
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want text|json)", c.Log.Format)
	}
	if c.Game.MaxAttempts <= 0 {
		return fmt.Errorf("GAME_MAX_ATTEMPTS must be > 0, got %d", c.Game.MaxAttempts)
	}
	if c.Game.Hints < 0 {
		return fmt.Errorf("GAME_HINTS must be >= 0, got %d", c.Game.Hints)
	}
	if c.Secret.Attempts <= 0 {
		return fmt.Errorf("SECRET_ATTEMPTS must be > 0, got %d", c.Secret.Attempts)
	}
	return nil
}

// Logger builds the process logger from the Log section.
func (c Config) Logger() *slog.Logger {
	if c.Log.Format == "json" {
		return c.LoggerTo(os.Stdout)
	}
	return c.LoggerTo(os.Stderr)
}

// LoggerTo is Logger with an explicit destination.
func (c Config) LoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Log.Level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
