package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"example.com/mastermind/db"
)

// Source picks the migration files: dir on disk when set, otherwise the set
// embedded in the binary.
func Source(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(db.Migrations, "migrations")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return os.DirFS(dir), nil
}

// Up applies all pending migrations from fsys and logs each one applied.
func Up(ctx context.Context, dbURL string, fsys fs.FS, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	conn, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("migrations: open db: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error("database close error", "error", err)
		}
	}()

	p, err := goose.NewProvider(goose.DialectPostgres, conn, fsys)
	if err != nil {
		return fmt.Errorf("migrations: provider: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	log.Info("database migrations up to date", "applied", len(results))
	return nil
}
