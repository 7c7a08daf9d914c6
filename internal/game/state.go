package game

// State is the lifecycle of a Session.
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

func (s State) Valid() bool {
	switch s {
	case StatePending, StateInProgress, StateWon, StateLost:
		return true
	}
	return false
}

func (s State) String() string { return string(s) }

// Op names a Session operation for the transition table and for errors.
type Op string

const (
	OpStart  Op = "start"
	OpGuess  Op = "guess"
	OpHint   Op = "hint"
	OpReveal Op = "reveal"
)

// rule declares the single state an operation may run from and the states
// it may leave the session in.
type rule struct {
	from State
	to   []State
}

var transitions = map[Op]rule{
	OpStart: {from: StatePending, to: []State{StateInProgress}},
	OpGuess: {from: StateInProgress, to: []State{StateInProgress, StateWon, StateLost}},
	OpHint:  {from: StateInProgress, to: []State{StateInProgress}},
}

// guard rejects op unless the session sits in op's source state.
func guard(op Op, cur State) error {
	r, ok := transitions[op]
	if !ok || r.from != cur {
		return &InvalidStateError{Op: op, State: cur}
	}
	return nil
}

// advance moves cur to next if the table allows it for op.
func advance(op Op, cur, next State) (State, error) {
	if err := guard(op, cur); err != nil {
		return cur, err
	}
	for _, to := range transitions[op].to {
		if to == next {
			return next, nil
		}
	}
	return cur, &InvalidStateError{Op: op, State: cur}
}
