package play

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/secret"
	"example.com/mastermind/internal/store"
)

const hookTimeout = 5 * time.Second

type Config struct {
	MaxAttempts int
	Hints       int             // used as given; 0 disables hints
	Difficulty  game.Difficulty // for create requests that name none; zero means Normal
	Rand        game.Source     // hint selection; nil uses the global source
}

// ResultRecorder is satisfied by *store.StatsStore.
type ResultRecorder interface {
	RecordResult(ctx context.Context, r store.GameResult) error
}

// TableService caches live tables in memory and restores them from
// persistent storage (Redis) after a restart.
type TableService struct {
	mu sync.Mutex
	in map[string]*Table

	cfg     Config
	persist TablePersistence
	secrets secret.Generator
	results ResultRecorder
	log     *slog.Logger
}

func NewTableService(cfg Config, persist TablePersistence, secrets secret.Generator, results ResultRecorder, log *slog.Logger) *TableService {
	if log == nil {
		log = slog.Default()
	}
	return &TableService{
		in:      make(map[string]*Table),
		cfg:     cfg,
		persist: persist,
		secrets: secrets,
		results: results,
		log:     log,
	}
}

// DefaultDifficulty is the preset used when a create request names none.
func (s *TableService) DefaultDifficulty() game.Difficulty {
	if s.cfg.Difficulty.Name == "" {
		return game.Normal
	}
	return s.cfg.Difficulty
}

// Create draws a secret for d and opens a pending table owned by ownerID.
func (s *TableService) Create(ctx context.Context, ownerID, ownerName string, d game.Difficulty) (*Table, error) {
	sec, err := s.secrets.Generate(ctx, d.Shape)
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	opts := []game.Option{game.WithRand(s.cfg.Rand)}
	if s.cfg.MaxAttempts > 0 {
		opts = append(opts, game.WithMaxAttempts(s.cfg.MaxAttempts))
	}
	if s.cfg.Hints >= 0 {
		opts = append(opts, game.WithHints(s.cfg.Hints))
	}
	sess, err := game.NewSession(sec, opts...)
	if err != nil {
		return nil, err
	}

	t := newTable(randID(12), ownerID, ownerName, d, sess)
	s.hook(t)

	t.mu.Lock()
	snap := t.snapshotLocked()
	t.mu.Unlock()
	if err := s.persist.Save(ctx, t.id, snap); err != nil {
		return nil, fmt.Errorf("save table %s: %w", t.id, err)
	}

	s.mu.Lock()
	s.in[t.id] = t
	s.mu.Unlock()

	s.log.Info("table created", "game_id", t.id, "owner", ownerID, "difficulty", d.Name)
	return t, nil
}

func (s *TableService) GetOrLoad(ctx context.Context, gameID string) (*Table, bool, error) {
	s.mu.Lock()
	t, ok := s.in[gameID]
	s.mu.Unlock()
	if ok {
		return t, true, nil
	}

	snap, found, err := s.persist.Load(ctx, gameID)
	if err != nil || !found {
		return nil, false, err
	}
	t, err = restoreTable(snap, s.cfg.Rand)
	if err != nil {
		return nil, false, fmt.Errorf("restore table %s: %w", gameID, err)
	}
	s.hook(t)

	s.mu.Lock()
	// another request may have restored it first
	if cur, ok := s.in[gameID]; ok {
		s.mu.Unlock()
		return cur, true, nil
	}
	s.in[gameID] = t
	s.mu.Unlock()

	s.log.Info("table restored", "game_id", gameID, "state", snap.Session.State)
	return t, true, nil
}

// hook wires persistence and result recording. Both run detached from any
// request context so a disconnecting client cannot cancel the write.
func (s *TableService) hook(t *Table) {
	t.onPersist = func(snap TableSnapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()
		if err := s.persist.Save(ctx, snap.GameID, snap); err != nil {
			s.log.Error("save snapshot", "game_id", snap.GameID, "err", err)
		}
	}
	if s.results == nil {
		return
	}
	t.onFinish = func(r store.GameResult) {
		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()
		if err := s.results.RecordResult(ctx, r); err != nil {
			s.log.Error("record result", "game_id", r.GameID, "err", err)
			return
		}
		s.log.Info("game finished", "game_id", r.GameID, "won", r.Won, "attempts", r.Attempts)
	}
}
