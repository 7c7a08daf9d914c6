package play

import (
	"time"

	"example.com/mastermind/internal/game"
)

// TableSnapshot is the serialisable state of a Table, as stored in Redis.
type TableSnapshot struct {
	GameID     string        `json:"gameId"`
	OwnerID    string        `json:"ownerId"`
	OwnerName  string        `json:"ownerName"`
	Difficulty string        `json:"difficulty"`
	CreatedAt  time.Time     `json:"createdAt"`
	Recorded   bool          `json:"recorded"`
	Session    game.Snapshot `json:"session"`
}

func (t *Table) snapshotLocked() TableSnapshot {
	return TableSnapshot{
		GameID:     t.id,
		OwnerID:    t.owner,
		OwnerName:  t.ownerName,
		Difficulty: t.difficulty.Name,
		CreatedAt:  t.createdAt,
		Recorded:   t.recorded,
		Session:    t.session.Snapshot(),
	}
}

// restoreTable rebuilds a Table; the session is replayed and validated by
// game.Restore.
func restoreTable(snap TableSnapshot, rng game.Source) (*Table, error) {
	d, err := game.ParseDifficulty(snap.Difficulty)
	if err != nil {
		return nil, err
	}
	s, err := game.Restore(snap.Session, rng)
	if err != nil {
		return nil, err
	}
	t := newTable(snap.GameID, snap.OwnerID, snap.OwnerName, d, s)
	t.createdAt = snap.CreatedAt
	t.recorded = snap.Recorded
	return t, nil
}
