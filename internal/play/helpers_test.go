package play

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/mastermind/internal/auth"
	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/store"
)

// fixedSecrets cycles values to fill every shape: 1 2 3, 1 2 3 4, 1 2 3 4 1.
type fixedSecrets struct{ values []int }

func (f fixedSecrets) Generate(_ context.Context, shape game.Shape) (game.Sequence, error) {
	out := make([]int, shape.Length)
	for i := range out {
		out[i] = f.values[i%len(f.values)]
	}
	return game.NewSequence(out, shape)
}

type firstPick struct{}

func (firstPick) IntN(int) int { return 0 }

type memResults struct {
	mu      sync.Mutex
	results []store.GameResult
}

func (m *memResults) RecordResult(_ context.Context, r store.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memResults) all() []store.GameResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.GameResult(nil), m.results...)
}

// testVerifier maps a token to a user id of the same name.
type testVerifier struct{}

func (testVerifier) Verify(token string) (*auth.Claims, error) {
	switch token {
	case "u1":
		return &auth.Claims{UserID: "u1", DisplayName: "Alice"}, nil
	case "u2":
		return &auth.Claims{UserID: "u2", DisplayName: "Bob"}, nil
	}
	return nil, errors.New("bad token")
}

func newTestService(t *testing.T, persist TablePersistence, results ResultRecorder, cfg Config) *TableService {
	t.Helper()
	if persist == nil {
		persist = NewMemoryTableStore()
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Rand == nil {
		cfg.Rand = firstPick{}
	}
	svc := NewTableService(cfg, persist, fixedSecrets{values: []int{1, 2, 3, 4}}, results, nil)
	require.NotNil(t, svc)
	return svc
}

// drain returns the envelope types queued on cc so far.
func drain(cc *ClientConn) []string {
	var types []string
	for {
		select {
		case b, ok := <-cc.send:
			if !ok {
				return types
			}
			var env Envelope
			if err := json.Unmarshal(b, &env); err == nil {
				types = append(types, env.Type)
			}
		default:
			return types
		}
	}
}
