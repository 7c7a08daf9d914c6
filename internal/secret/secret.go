// Package secret supplies the hidden sequence a game is played against.
package secret

import (
	"context"
	"log/slog"
	"time"

	"example.com/mastermind/internal/game"
)

// Generator produces a secret of the given shape.
type Generator interface {
	Generate(ctx context.Context, shape game.Shape) (game.Sequence, error)
}

// Local draws every digit uniformly from the shape's range.
type Local struct {
	Rand game.Source
}

func NewLocal(src game.Source) *Local { return &Local{Rand: src} }

func (l *Local) Generate(_ context.Context, shape game.Shape) (game.Sequence, error) {
	if err := shape.Validate(); err != nil {
		return game.Sequence{}, err
	}
	values := make([]int, shape.Length)
	span := shape.Span()
	for i := range values {
		values[i] = shape.Min + l.intN(span)
	}
	return game.NewSequence(values, shape)
}

func (l *Local) intN(n int) int {
	if l.Rand == nil {
		return defaultSource.IntN(n)
	}
	return l.Rand.IntN(n)
}

// Settings selects and tunes the secret source.
type Settings struct {
	RandomOrgURL string
	Timeout      time.Duration
	Attempts     int
	RetryDelay   time.Duration
	Offline      bool
}

// New returns Local when offline, otherwise random.org behind Resilient with
// Local as the fallback.
func New(s Settings, log *slog.Logger) Generator {
	local := NewLocal(nil)
	if s.Offline {
		return local
	}
	return NewResilient(NewRandomOrg(s.RandomOrgURL, s.Timeout), local, s.Attempts, s.RetryDelay, log)
}
