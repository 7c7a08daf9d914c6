package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays picks in order, cycling.
type fixedSource struct {
	picks []int
	i     int
}

func (f *fixedSource) IntN(n int) int {
	v := f.picks[f.i%len(f.picks)] % n
	f.i++
	return v
}

func newStarted(t *testing.T, secret Sequence, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(secret, opts...)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

func TestSession_Scenarios(t *testing.T) {
	cases := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "new session is pending with defaults",
			run: func(t *testing.T) {
				s, err := NewSession(seq(1, 2, 3, 4))
				require.NoError(t, err)

				assert.Equal(t, StatePending, s.State())
				assert.Equal(t, DefaultMaxAttempts, s.MaxAttempts())
				assert.Equal(t, DefaultMaxAttempts, s.RemainingAttempts())
				assert.Equal(t, DefaultHints, s.HintsRemaining())
				assert.Empty(t, s.History())
			},
		},
		{
			name: "start twice fails",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4))

				err := s.Start()
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidState))
				assert.Contains(t, err.Error(), "already started")
				assert.Equal(t, StateInProgress, s.State())
			},
		},
		{
			name: "guess before start fails",
			run: func(t *testing.T) {
				s, err := NewSession(seq(1, 2, 3, 4))
				require.NoError(t, err)

				_, err = s.SubmitGuess(seq(1, 2, 3, 4))
				var ise *InvalidStateError
				require.ErrorAs(t, err, &ise)
				assert.Equal(t, OpGuess, ise.Op)
				assert.Equal(t, StatePending, ise.State)
				assert.Empty(t, s.History())
			},
		},
		{
			name: "winning guess",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4))

				score, err := s.SubmitGuess(seq(1, 2, 3, 4))
				require.NoError(t, err)
				assert.True(t, score.Solved())
				assert.Equal(t, StateWon, s.State())
				assert.Equal(t, DefaultMaxAttempts-1, s.RemainingAttempts())

				secret, err := s.Secret()
				require.NoError(t, err)
				assert.Equal(t, "1 2 3 4", secret.String())
			},
		},
		{
			name: "lost exactly on the last attempt",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4), WithMaxAttempts(3))

				for i := 0; i < 2; i++ {
					_, err := s.SubmitGuess(seq(5, 6, 7, 0))
					require.NoError(t, err)
					assert.Equal(t, StateInProgress, s.State())
				}

				score, err := s.SubmitGuess(seq(1, 4, 0, 2))
				require.NoError(t, err)
				assert.Equal(t, Score{DigitMatches: 3, PositionMatches: 1, Length: 4}, score)
				assert.Equal(t, StateLost, s.State())
				assert.Equal(t, 0, s.RemainingAttempts())
			},
		},
		{
			name: "win on the last attempt beats loss",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4), WithMaxAttempts(2))

				_, err := s.SubmitGuess(seq(0, 0, 0, 0))
				require.NoError(t, err)
				_, err = s.SubmitGuess(seq(1, 2, 3, 4))
				require.NoError(t, err)

				assert.Equal(t, StateWon, s.State())
				assert.Equal(t, 0, s.RemainingAttempts())
			},
		},
		{
			name: "guess after game over fails without mutating history",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4), WithMaxAttempts(1))
				_, err := s.SubmitGuess(seq(0, 0, 0, 0))
				require.NoError(t, err)
				require.Equal(t, StateLost, s.State())

				_, err = s.SubmitGuess(seq(1, 2, 3, 4))
				require.ErrorIs(t, err, ErrInvalidState)
				assert.Contains(t, err.Error(), "already finished")
				assert.Len(t, s.History(), 1)
				assert.Equal(t, StateLost, s.State())

				assert.ErrorIs(t, s.Start(), ErrInvalidState)
			},
		},
		{
			name: "guess after a win fails without mutating history",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4))
				_, err := s.SubmitGuess(seq(1, 2, 3, 4))
				require.NoError(t, err)
				require.Equal(t, StateWon, s.State())

				_, err = s.SubmitGuess(seq(0, 0, 0, 0))
				require.ErrorIs(t, err, ErrInvalidState)
				assert.Contains(t, err.Error(), "already finished")
				assert.Len(t, s.History(), 1)
				assert.Equal(t, StateWon, s.State())
				assert.Equal(t, DefaultMaxAttempts-1, s.RemainingAttempts())
			},
		},
		{
			name: "bad guesses are rejected and not recorded",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4))

				_, err := s.SubmitGuess(Sequence{})
				reason, _ := ReasonOf(err)
				assert.Equal(t, ReasonMissing, reason)

				_, err = s.SubmitGuess(MustSequence(Shape{Length: 3, Max: 9}, 1, 2, 3))
				reason, _ = ReasonOf(err)
				assert.Equal(t, ReasonShapeMismatch, reason)

				_, err = s.SubmitGuess(MustSequence(Shape{Length: 4, Max: 7}, 1, 2, 3, 4))
				reason, _ = ReasonOf(err)
				assert.Equal(t, ReasonShapeMismatch, reason)

				assert.Empty(t, s.History())
				assert.Equal(t, DefaultMaxAttempts, s.RemainingAttempts())
				assert.Equal(t, StateInProgress, s.State())
			},
		},
		{
			name: "history keeps guesses and scores aligned",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4))
				guesses := []Sequence{seq(5, 6, 7, 0), seq(1, 4, 0, 2), seq(1, 1, 1, 1)}
				for _, g := range guesses {
					_, err := s.SubmitGuess(g)
					require.NoError(t, err)
				}

				h := s.History()
				require.Len(t, h, 3)
				for i, turn := range h {
					assert.True(t, turn.Guess.Equal(guesses[i]))
					want, _ := Evaluate(seq(1, 2, 3, 4), guesses[i])
					assert.Equal(t, want, turn.Score)
				}

				h[0] = Turn{}
				assert.True(t, s.History()[0].Guess.Equal(guesses[0]), "history must be re-readable")
			},
		},
		{
			name: "secret hidden until finished",
			run: func(t *testing.T) {
				s := newStarted(t, seq(1, 2, 3, 4))
				_, err := s.Secret()
				require.ErrorIs(t, err, ErrInvalidState)
				assert.Contains(t, err.Error(), "not finished")
			},
		},
		{
			name: "invalid options",
			run: func(t *testing.T) {
				_, err := NewSession(seq(1, 2, 3, 4), WithMaxAttempts(0))
				assert.ErrorIs(t, err, ErrValidation)

				_, err = NewSession(seq(1, 2, 3, 4), WithHints(-1))
				assert.ErrorIs(t, err, ErrValidation)

				_, err = NewSession(Sequence{})
				assert.ErrorIs(t, err, ErrValidation)
			},
		},
		{
			name: "zero-length secret is won on the first guess",
			run: func(t *testing.T) {
				empty := MustSequence(Shape{})
				s := newStarted(t, empty)

				score, err := s.SubmitGuess(empty)
				require.NoError(t, err)
				assert.Equal(t, Score{}, score)
				assert.Equal(t, StateWon, s.State())

				_, ok := s.Hint()
				assert.False(t, ok)
				assert.Equal(t, DefaultHints, s.HintsRemaining())
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, tc.run)
	}
}

func TestSession_Hints(t *testing.T) {
	src := &fixedSource{picks: []int{3, 0, 1}}
	s := newStarted(t, seq(1, 2, 3, 4), WithHints(3), WithRand(src))

	var got []int
	for i := 0; i < 3; i++ {
		v, ok := s.Hint()
		require.True(t, ok, "hint %d", i+1)
		got = append(got, v)
	}
	assert.Equal(t, []int{4, 1, 2}, got)
	assert.Equal(t, 0, s.HintsRemaining())

	_, ok := s.Hint()
	assert.False(t, ok)
	assert.Equal(t, 0, s.HintsRemaining())
}

func TestSession_HintsOnlyWhilePlaying(t *testing.T) {
	s, err := NewSession(seq(1, 2, 3, 4), WithHints(2))
	require.NoError(t, err)

	_, ok := s.Hint()
	assert.False(t, ok, "pending")
	assert.Equal(t, 2, s.HintsRemaining())
	var ise *InvalidStateError
	require.ErrorAs(t, s.CanHint(), &ise)
	assert.Equal(t, OpHint, ise.Op)
	assert.Contains(t, ise.Error(), "not started")

	require.NoError(t, s.Start())
	require.NoError(t, s.CanHint())
	_, ok = s.Hint()
	assert.True(t, ok)
	assert.Equal(t, 1, s.HintsRemaining())

	_, err = s.SubmitGuess(seq(1, 2, 3, 4))
	require.NoError(t, err)
	_, ok = s.Hint()
	assert.False(t, ok, "finished")
	assert.Equal(t, 1, s.HintsRemaining())
	assert.ErrorIs(t, s.CanHint(), ErrInvalidState)
}

func TestSession_HintsDisabled(t *testing.T) {
	s := newStarted(t, seq(1, 2, 3, 4), WithHints(0))
	_, ok := s.Hint()
	assert.False(t, ok)
	assert.Equal(t, 0, s.HintsRemaining())
}

func TestSession_HintValueComesFromSecret(t *testing.T) {
	secret := seq(7, 7, 3, 0)
	s := newStarted(t, secret, WithHints(50))
	for i := 0; i < 50; i++ {
		v, ok := s.Hint()
		require.True(t, ok)
		assert.Contains(t, secret.Values(), v)
	}
}
