package play

import (
	"encoding/json"
	"sync"
	"time"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/input"
	"example.com/mastermind/internal/store"
)

// Table hosts one Session for its owner. The mutex is what serialises every
// call into the Session, whether it arrives over HTTP or WebSocket.
type Table struct {
	id         string
	owner      string
	ownerName  string
	difficulty game.Difficulty
	createdAt  time.Time

	mu       sync.Mutex
	session  *game.Session
	recorded bool
	conns    map[*ClientConn]struct{}

	onPersist func(TableSnapshot)
	onFinish  func(store.GameResult)
}

func newTable(id, owner, ownerName string, d game.Difficulty, s *game.Session) *Table {
	return &Table{
		id:         id,
		owner:      owner,
		ownerName:  ownerName,
		difficulty: d,
		createdAt:  time.Now(),
		session:    s,
		conns:      make(map[*ClientConn]struct{}),
	}
}

func (t *Table) ID() string { return t.id }

func (t *Table) Owner() string { return t.owner }

func (t *Table) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.session.Start(); err != nil {
		return err
	}
	t.broadcastStateLocked()
	t.persistLocked()
	return nil
}

// SubmitGuess parses text against the table's shape and plays it. State is
// checked before the text, so a table that is not in play answers with an
// *game.InvalidStateError whatever was sent.
func (t *Table) SubmitGuess(text string) (ScorePayload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st := t.session.State(); st != game.StateInProgress {
		return ScorePayload{}, &game.InvalidStateError{Op: game.OpGuess, State: st}
	}
	guess, err := input.ParseSequence(text, t.session.Shape())
	if err != nil {
		return ScorePayload{}, err
	}
	score, err := t.session.SubmitGuess(guess)
	if err != nil {
		return ScorePayload{}, err
	}

	res := ScorePayload{
		Turn:              turnPayload(game.Turn{Guess: guess, Score: score}),
		Solved:            score.Solved(),
		State:             t.session.State().String(),
		RemainingAttempts: t.session.RemainingAttempts(),
	}
	t.broadcastLocked(Envelope{Type: "score", Payload: mustJSON(res)})

	if t.session.State().Terminal() {
		t.finishLocked()
	}
	t.broadcastStateLocked()
	t.persistLocked()
	return res, nil
}

// Hint spends one hint. Outside IN_PROGRESS it fails without touching the
// budget; an exhausted budget is a normal answer, not an error.
func (t *Table) Hint() (HintPayload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.session.CanHint(); err != nil {
		return HintPayload{}, err
	}
	v, ok := t.session.Hint()
	res := HintPayload{Exhausted: !ok, HintsRemaining: t.session.HintsRemaining()}
	if ok {
		res.Value = &v
	}
	t.persistLocked()
	return res, nil
}

func (t *Table) State() StatePayload {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buildStateLocked()
}

func (t *Table) finishLocked() {
	secret, err := t.session.Secret()
	if err != nil {
		return
	}
	state := t.session.State()
	t.broadcastLocked(Envelope{
		Type:    "game_finished",
		Payload: mustJSON(FinishedPayload{State: state.String(), Secret: secret.String()}),
	})

	if t.recorded || t.onFinish == nil {
		return
	}
	t.recorded = true
	t.onFinish(store.GameResult{
		GameID:     t.id,
		UserID:     t.owner,
		Difficulty: t.difficulty.Name,
		Won:        state == game.StateWon,
		Attempts:   len(t.session.History()),
		Secret:     secret.String(),
	})
}

func (t *Table) buildStateLocked() StatePayload {
	turns := t.session.History()
	history := make([]TurnPayload, len(turns))
	for i, turn := range turns {
		history[i] = turnPayload(turn)
	}

	st := StatePayload{
		GameID:            t.id,
		Player:            t.ownerName,
		Difficulty:        t.difficulty.Name,
		Shape:             t.session.Shape(),
		State:             t.session.State().String(),
		MaxAttempts:       t.session.MaxAttempts(),
		RemainingAttempts: t.session.RemainingAttempts(),
		HintsRemaining:    t.session.HintsRemaining(),
		History:           history,
	}
	if secret, err := t.session.Secret(); err == nil {
		st.Secret = secret.String()
	}
	return st
}

func (t *Table) attach(cc *ClientConn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conns[cc] = struct{}{}
	t.sendLocked(cc, Envelope{Type: "state", Payload: mustJSON(t.buildStateLocked())})
}

// detach must run before cc is closed so no send hits a closed channel.
func (t *Table) detach(cc *ClientConn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.conns, cc)
}

func (t *Table) sendErrorTo(cc *ClientConn, code, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendLocked(cc, Envelope{Type: "error", Payload: mustJSON(ErrorPayload{Code: code, Message: message})})
}

func (t *Table) sendTo(cc *ClientConn, env Envelope) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendLocked(cc, env)
}

func (t *Table) broadcastStateLocked() {
	t.broadcastLocked(Envelope{Type: "state", Payload: mustJSON(t.buildStateLocked())})
}

func (t *Table) sendLocked(cc *ClientConn, env Envelope) {
	if cc == nil {
		return
	}
	if _, ok := t.conns[cc]; !ok {
		return
	}
	b, _ := json.Marshal(env)
	select {
	case cc.send <- b:
	default:
		// slow reader: drop rather than block the table
	}
}

func (t *Table) broadcastLocked(env Envelope) {
	for cc := range t.conns {
		t.sendLocked(cc, env)
	}
}

func (t *Table) persistLocked() {
	if t.onPersist == nil {
		return
	}
	t.onPersist(t.snapshotLocked())
}
