package play

import (
	"encoding/json"

	"example.com/mastermind/internal/game"
)

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// inbound
type CreateGamePayload struct {
	Difficulty string `json:"difficulty"`
}

type SubmitGuessPayload struct {
	Guess string `json:"guess"`
}

// outbound
type TurnPayload struct {
	Guess           string `json:"guess"`
	DigitMatches    int    `json:"digitMatches"`
	PositionMatches int    `json:"positionMatches"`
}

type StatePayload struct {
	GameID            string        `json:"gameId"`
	Player            string        `json:"player"`
	Difficulty        string        `json:"difficulty"`
	Shape             game.Shape    `json:"shape"`
	State             string        `json:"state"` // pending|in_progress|won|lost
	MaxAttempts       int           `json:"maxAttempts"`
	RemainingAttempts int           `json:"remainingAttempts"`
	HintsRemaining    int           `json:"hintsRemaining"`
	History           []TurnPayload `json:"history"`
	Secret            string        `json:"secret,omitempty"` // only once finished
}

type ScorePayload struct {
	Turn              TurnPayload `json:"turn"`
	Solved            bool        `json:"solved"`
	State             string      `json:"state"`
	RemainingAttempts int         `json:"remainingAttempts"`
}

type HintPayload struct {
	Value          *int `json:"value,omitempty"`
	Exhausted      bool `json:"exhausted"`
	HintsRemaining int  `json:"hintsRemaining"`
}

type FinishedPayload struct {
	State  string `json:"state"`
	Secret string `json:"secret"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func turnPayload(t game.Turn) TurnPayload {
	return TurnPayload{
		Guess:           t.Guess.String(),
		DigitMatches:    t.Score.DigitMatches,
		PositionMatches: t.Score.PositionMatches,
	}
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

type GuessResponse struct {
	Score ScorePayload `json:"score"`
	State StatePayload `json:"state"`
}
