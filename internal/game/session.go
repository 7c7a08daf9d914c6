package game

import "math/rand/v2"

const (
	DefaultMaxAttempts = 10
	DefaultHints       = 2
)

// Source is the randomness behind hint selection. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n > 0.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Turn is one submitted guess paired with its score.
type Turn struct {
	Guess Sequence
	Score Score
}

// Session is one game: a fixed secret, an attempt budget, a hint budget and the
// ordered turns played so far. It has a single owner; callers serialise access.
type Session struct {
	secret      Sequence
	state       State
	maxAttempts int
	hintsLeft   int
	turns       []Turn
	rng         Source
}

type Option func(*Session) error

// WithMaxAttempts sets the attempt budget (n > 0).
func WithMaxAttempts(n int) Option {
	return func(s *Session) error {
		if n <= 0 {
			return validationf(ReasonBadConfig, "max attempts must be positive, got %d", n)
		}
		s.maxAttempts = n
		return nil
	}
}

// WithHints sets the hint budget (n >= 0).
func WithHints(n int) Option {
	return func(s *Session) error {
		if n < 0 {
			return validationf(ReasonBadConfig, "hints must not be negative, got %d", n)
		}
		s.hintsLeft = n
		return nil
	}
}

// WithRand injects the hint selection source.
func WithRand(src Source) Option {
	return func(s *Session) error {
		if src != nil {
			s.rng = src
		}
		return nil
	}
}

// NewSession creates a pending session around a valid secret.
func NewSession(secret Sequence, opts ...Option) (*Session, error) {
	if secret.IsZero() {
		return nil, validationf(ReasonMissing, "secret is required")
	}
	s := &Session{
		secret:      secret,
		state:       StatePending,
		maxAttempts: DefaultMaxAttempts,
		hintsLeft:   DefaultHints,
		rng:         globalSource{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.turns = make([]Turn, 0, s.maxAttempts)
	return s, nil
}

func (s *Session) Start() error {
	next, err := advance(OpStart, s.state, StateInProgress)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// SubmitGuess scores guess and records the turn. The score is returned on
// the turn that ends the game as well.
func (s *Session) SubmitGuess(guess Sequence) (Score, error) {
	if err := guard(OpGuess, s.state); err != nil {
		return Score{}, err
	}
	if guess.IsZero() {
		return Score{}, validationf(ReasonMissing, "guess is required")
	}
	if guess.Shape() != s.secret.Shape() {
		gs, ss := guess.Shape(), s.secret.Shape()
		return Score{}, validationf(ReasonShapeMismatch,
			"guess must be %d numbers between %d-%d, got %d numbers between %d-%d",
			ss.Length, ss.Min, ss.Max, gs.Length, gs.Min, gs.Max)
	}

	score, err := Evaluate(s.secret, guess)
	if err != nil {
		return Score{}, err
	}

	next := s.outcome(score, len(s.turns)+1)
	if s.state, err = advance(OpGuess, s.state, next); err != nil {
		return Score{}, err
	}
	s.turns = append(s.turns, Turn{Guess: guess, Score: score})
	return score, nil
}

// outcome decides the state after the played-th guess. A win on the last
// attempt is a win.
func (s *Session) outcome(score Score, played int) State {
	switch {
	case score.PositionMatches == s.secret.Len():
		return StateWon
	case played >= s.maxAttempts:
		return StateLost
	default:
		return StateInProgress
	}
}

// Hint reveals one secret digit (not its position). ok is false when the budget
// is spent or the game is not IN_PROGRESS; the budget never goes negative.
func (s *Session) Hint() (value int, ok bool) {
	if s.CanHint() != nil || s.hintsLeft == 0 || s.secret.Len() == 0 {
		return 0, false
	}
	s.hintsLeft--
	return s.secret.At(s.rng.IntN(s.secret.Len())), true
}

// CanHint reports, as an *InvalidStateError, why Hint would refuse in the
// current state. It says nothing about the budget.
func (s *Session) CanHint() error { return guard(OpHint, s.state) }

func (s *Session) State() State { return s.state }

func (s *Session) MaxAttempts() int { return s.maxAttempts }

func (s *Session) HintsRemaining() int { return s.hintsLeft }

func (s *Session) Shape() Shape { return s.secret.Shape() }

func (s *Session) RemainingAttempts() int { return s.maxAttempts - len(s.turns) }

// History returns the turns in submission order. The slice is a copy.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Secret reveals the answer once the game is over.
func (s *Session) Secret() (Sequence, error) {
	if !s.state.Terminal() {
		return Sequence{}, &InvalidStateError{Op: OpReveal, State: s.state}
	}
	return s.secret, nil
}
