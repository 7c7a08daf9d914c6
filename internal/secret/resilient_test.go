package secret

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/mastermind/internal/game"
)

type flaky struct {
	failures int
	calls    int
	seq      game.Sequence
}

func (f *flaky) Generate(ctx context.Context, shape game.Shape) (game.Sequence, error) {
	f.calls++
	if f.calls <= f.failures {
		return game.Sequence{}, errors.New("boom")
	}
	return f.seq, nil
}

type constant struct{ seq game.Sequence }

func (c constant) Generate(context.Context, game.Shape) (game.Sequence, error) { return c.seq, nil }

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestResilient(t *testing.T) {
	shape := game.Normal.Shape
	remote := game.MustSequence(shape, 1, 2, 3, 4)
	local := game.MustSequence(shape, 7, 7, 7, 7)

	cases := []struct {
		name      string
		failures  int
		want      game.Sequence
		wantCalls int
	}{
		{name: "first try", failures: 0, want: remote, wantCalls: 1},
		{name: "second try", failures: 1, want: remote, wantCalls: 2},
		{name: "last try", failures: 2, want: remote, wantCalls: 3},
		{name: "fallback", failures: 3, want: local, wantCalls: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			primary := &flaky{failures: tc.failures, seq: remote}
			r := NewResilient(primary, constant{local}, 3, time.Millisecond, quietLog())

			got, err := r.Generate(context.Background(), shape)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
			assert.Equal(t, tc.wantCalls, primary.calls)
		})
	}
}

func TestResilient_CanceledFallsBack(t *testing.T) {
	shape := game.Easy.Shape
	local := game.MustSequence(shape, 5, 5, 5)
	primary := &flaky{failures: 10}
	r := NewResilient(primary, constant{local}, 3, time.Hour, quietLog())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	got, err := r.Generate(ctx, shape)
	require.NoError(t, err)
	assert.True(t, local.Equal(got))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, primary.calls)
}

func TestResilient_DefaultFallbackIsLocal(t *testing.T) {
	r := NewResilient(&flaky{failures: 10}, nil, 1, 0, quietLog())
	got, err := r.Generate(context.Background(), game.Hard.Shape)
	require.NoError(t, err)
	assert.Equal(t, game.Hard.Shape, got.Shape())
}

func TestNew(t *testing.T) {
	offline := New(Settings{Offline: true}, quietLog())
	assert.IsType(t, &Local{}, offline)

	online := New(Settings{RandomOrgURL: "http://127.0.0.1:1", Timeout: time.Second, Attempts: 2}, quietLog())
	r, ok := online.(*Resilient)
	require.True(t, ok)
	assert.IsType(t, &RandomOrg{}, r.Primary)
	assert.IsType(t, &Local{}, r.Fallback)
	assert.Equal(t, 2, r.Attempts)
}
