package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStats struct {
	UserID    string
	Wins      int
	Losses    int
	UpdatedAt time.Time
}

// GameResult is the record of one finished game.
type GameResult struct {
	GameID     string
	UserID     string
	Difficulty string
	Won        bool
	Attempts   int
	Secret     string
}

type StatsStore struct {
	db *pgxpool.Pool
}

func NewStatsStore(db *pgxpool.Pool) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) InitForUser(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, wins, losses)
		VALUES ($1, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

func (s *StatsStore) Get(ctx context.Context, userID string) (PlayerStats, error) {
	var st PlayerStats
	err := s.db.QueryRow(ctx, `
		SELECT user_id, wins, losses, updated_at
		FROM player_stats
		WHERE user_id=$1
	`, userID).Scan(&st.UserID, &st.Wins, &st.Losses, &st.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// no row yet counts as zeroes
		return PlayerStats{UserID: userID}, nil
	}
	if err != nil {
		return PlayerStats{}, err
	}
	return st, nil
}

// RecordResult stores r and bumps the player's counters in one transaction.
// Recording the same game twice is a no-op.
func (s *StatsStore) RecordResult(ctx context.Context, r GameResult) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO game_results (game_id, user_id, difficulty, won, attempts, secret)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (game_id) DO NOTHING
		`, r.GameID, r.UserID, r.Difficulty, r.Won, r.Attempts, r.Secret)
		if err != nil {
			return fmt.Errorf("insert game result: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		wins, losses := 0, 1
		if r.Won {
			wins, losses = 1, 0
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO player_stats (user_id, wins, losses)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET wins = player_stats.wins + EXCLUDED.wins,
			    losses = player_stats.losses + EXCLUDED.losses,
			    updated_at = now()
		`, r.UserID, wins, losses)
		if err != nil {
			return fmt.Errorf("update player stats: %w", err)
		}
		return nil
	})
}
