package game

import "fmt"

// Score is the outcome of comparing a guess with the secret.
// 0 <= PositionMatches <= DigitMatches <= Length always holds.
type Score struct {
	DigitMatches    int `json:"digitMatches"`
	PositionMatches int `json:"positionMatches"`
	Length          int `json:"length"`
}

// Solved reports whether every position matched.
func (s Score) Solved() bool { return s.PositionMatches == s.Length }

func (s Score) String() string {
	return fmt.Sprintf("%d correct numbers, %d in the correct position", s.DigitMatches, s.PositionMatches)
}

// Evaluate scores guess against secret.
//
// Exact matches are counted first and their indices consumed on both sides;
// the remaining digits are tallied per value and each value contributes
// min(secretCount, guessCount). Exact matches count toward DigitMatches too.
func Evaluate(secret, guess Sequence) (Score, error) {
	if secret.IsZero() || guess.IsZero() {
		return Score{}, validationf(ReasonMissing, "both sequences are required")
	}
	n := secret.Len()
	if guess.Len() != n {
		return Score{}, validationf(ReasonWrongLength,
			"cannot compare sequences of length %d and %d", n, guess.Len())
	}
	if secret.Equal(guess) {
		return Score{DigitMatches: n, PositionMatches: n, Length: n}, nil
	}

	var exact int
	tallyS := make(map[int]int, n)
	tallyG := make(map[int]int, n)
	for i := 0; i < n; i++ {
		s, g := secret.values[i], guess.values[i]
		if s == g {
			exact++
			continue
		}
		tallyS[s]++
		tallyG[g]++
	}

	var misplaced int
	for v, cs := range tallyS {
		misplaced += min(cs, tallyG[v])
	}

	return Score{
		DigitMatches:    exact + misplaced,
		PositionMatches: exact,
		Length:          n,
	}, nil
}
