package game

// Snapshot is the serialisable state of a Session.
type Snapshot struct {
	Shape          Shape   `json:"shape"`
	Secret         []int   `json:"secret"`
	State          State   `json:"state"`
	MaxAttempts    int     `json:"maxAttempts"`
	HintsRemaining int     `json:"hintsRemaining"`
	Guesses        [][]int `json:"guesses"`
}

func (s *Session) Snapshot() Snapshot {
	guesses := make([][]int, len(s.turns))
	for i, t := range s.turns {
		guesses[i] = t.Guess.Values()
	}
	return Snapshot{
		Shape:          s.secret.Shape(),
		Secret:         s.secret.Values(),
		State:          s.state,
		MaxAttempts:    s.maxAttempts,
		HintsRemaining: s.hintsLeft,
		Guesses:        guesses,
	}
}

// Restore rebuilds a Session from snap. Guesses are replayed through the
// scorer, so the restored state must agree with what they imply.
func Restore(snap Snapshot, rng Source) (*Session, error) {
	secret, err := NewSequence(snap.Secret, snap.Shape)
	if err != nil {
		return nil, err
	}
	if !snap.State.Valid() {
		return nil, validationf(ReasonBadConfig, "unknown state %q", snap.State)
	}
	s, err := NewSession(secret,
		WithMaxAttempts(snap.MaxAttempts),
		WithHints(snap.HintsRemaining),
		WithRand(rng),
	)
	if err != nil {
		return nil, err
	}
	if snap.State == StatePending {
		if len(snap.Guesses) > 0 {
			return nil, validationf(ReasonBadConfig, "pending session cannot have guesses")
		}
		return s, nil
	}

	s.state = StateInProgress
	for i, values := range snap.Guesses {
		guess, err := NewSequence(values, snap.Shape)
		if err != nil {
			return nil, err
		}
		if s.state.Terminal() {
			return nil, validationf(ReasonBadConfig, "guess %d recorded after the game ended", i+1)
		}
		if _, err := s.SubmitGuess(guess); err != nil {
			return nil, err
		}
	}
	if s.state != snap.State {
		return nil, validationf(ReasonBadConfig, "state %s does not match replayed state %s", snap.State, s.state)
	}
	return s, nil
}
