package secret

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sethvargo/go-retry"

	"example.com/mastermind/internal/game"
)

const (
	DefaultAttempts   = 3
	DefaultRetryDelay = time.Second
)

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

var defaultSource game.Source = globalSource{}

// Resilient asks Primary up to Attempts times, waiting Delay*attempt between
// tries, and falls back to Fallback when every try failed or ctx is done.
type Resilient struct {
	Primary  Generator
	Fallback Generator
	Attempts int
	Delay    time.Duration
	Log      *slog.Logger
}

func NewResilient(primary, fallback Generator, attempts int, delay time.Duration, log *slog.Logger) *Resilient {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if delay < 0 {
		delay = DefaultRetryDelay
	}
	if fallback == nil {
		fallback = NewLocal(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resilient{Primary: primary, Fallback: fallback, Attempts: attempts, Delay: delay, Log: log}
}

func (r *Resilient) Generate(ctx context.Context, shape game.Shape) (game.Sequence, error) {
	if err := shape.Validate(); err != nil {
		return game.Sequence{}, err
	}

	var out game.Sequence
	attempt := 0
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		seq, err := r.Primary.Generate(ctx, shape)
		if err != nil {
			r.Log.Warn("secret source attempt failed", "attempt", attempt, "of", r.Attempts, "error", err)
			return retry.RetryableError(err)
		}
		out = seq
		return nil
	})
	if err == nil {
		return out, nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.Log.Warn("secret source interrupted, using local generation", "error", err)
	} else {
		r.Log.Warn("secret source failed, using local generation", "attempts", attempt, "error", err)
	}
	return r.Fallback.Generate(context.WithoutCancel(ctx), shape)
}

// backoff waits Delay, 2*Delay, ... and stops after Attempts-1 retries.
func (r *Resilient) backoff() retry.Backoff {
	n := 0
	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return time.Duration(n) * r.Delay, false
	})
	return retry.WithMaxRetries(uint64(r.Attempts-1), linear)
}
