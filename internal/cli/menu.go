package cli

import "strconv"

// MenuChoice is an entry of the in-game menu.
type MenuChoice int

const (
	MakeGuess MenuChoice = iota + 1
	ShowHistory
	ExitGame
	GetHint
)

var menuLabels = map[MenuChoice]string{
	MakeGuess:   "Make a guess",
	ShowHistory: "Show game history",
	ExitGame:    "Exit game",
	GetHint:     "Get a hint",
}

func menuChoices() []MenuChoice { return []MenuChoice{MakeGuess, ShowHistory, ExitGame, GetHint} }

// ParseMenuChoice returns false for anything that is not a listed entry.
func ParseMenuChoice(s string) (MenuChoice, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	c := MenuChoice(n)
	_, ok := menuLabels[c]
	return c, ok
}

func (c MenuChoice) String() string { return menuLabels[c] }
