package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/input"
)

// ErrClosed is returned once the input stream is exhausted.
var ErrClosed = errors.New("input closed")

// UI reads player input and renders game state on a terminal.
type UI struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewUI(in io.Reader, out io.Writer) *UI {
	return &UI{in: bufio.NewScanner(in), out: out}
}

func (u *UI) readLine() (string, error) {
	if !u.in.Scan() {
		if err := u.in.Err(); err != nil {
			return "", err
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(u.in.Text()), nil
}

func (u *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(u.out, format, args...)
}

func (u *UI) Welcome(maxAttempts int) {
	u.printf("***** Welcome to Mastermind *****\n")
	u.printf("- Guess the secret combination of numbers.\n")
	u.printf("- Duplicates are allowed.\n")
	u.printf("- You have %d attempts to crack the code.\n\n", maxAttempts)
}

// PromptDifficulty shows the preset menu. An empty answer picks def, or is
// rejected when def is the zero Difficulty.
func (u *UI) PromptDifficulty(def game.Difficulty) (game.Difficulty, error) {
	for {
		u.printf("Choose a difficulty:\n")
		for _, d := range game.Difficulties() {
			u.printf("%d. %s\n", d.Level, d)
		}
		if def.Name != "" {
			u.printf("Enter your choice (1-%d) [%d]: ", len(game.Difficulties()), def.Level)
		} else {
			u.printf("Enter your choice (1-%d): ", len(game.Difficulties()))
		}

		line, err := u.readLine()
		if err != nil {
			return game.Difficulty{}, err
		}
		if line == "" && def.Name != "" {
			return def, nil
		}
		d, err := game.ParseDifficulty(line)
		if err == nil && line != "" {
			return d, nil
		}
		u.printf("\n*** Invalid choice. Please enter a number between 1 and %d. ***\n\n", len(game.Difficulties()))
	}
}

func (u *UI) PromptName() (string, error) {
	for {
		u.printf("What is your name?: ")
		name, err := u.readLine()
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
}

func (u *UI) PromptMenu(name string, remaining int) (MenuChoice, error) {
	for {
		u.printf("\n========================================\n")
		u.printf("           MASTERMIND - GAME MENU\n")
		u.printf("Player: %s\n", name)
		u.printf("========================================\n")
		u.printf("Remaining attempts: %d\n\n", remaining)
		u.printf("Choose an option:\n")
		for _, c := range menuChoices() {
			u.printf("%d. %s\n", c, c)
		}
		u.printf("\nEnter your choice (1-%d): ", len(menuChoices()))

		line, err := u.readLine()
		if err != nil {
			return 0, err
		}
		if c, ok := ParseMenuChoice(line); ok {
			return c, nil
		}
		u.Error("Invalid menu choice. Please try again.")
	}
}

// PromptGuess re-asks until the text parses into a sequence of shape.
func (u *UI) PromptGuess(remaining int, shape game.Shape) (game.Sequence, error) {
	for {
		u.printf("Enter your guess (%d attempts remaining): ", remaining)
		line, err := u.readLine()
		if err != nil {
			return game.Sequence{}, err
		}
		guess, err := input.ParseSequence(line, shape)
		if err == nil {
			return guess, nil
		}
		u.printf("\n*** INVALID INPUT ***\n%s\n\n", err)
		u.printf("=> Please enter %d numbers between %d-%d, separated by spaces (e.g. '%s')\n\n",
			shape.Length, shape.Min, shape.Max, example(shape))
	}
}

func (u *UI) PromptPlayAgain() (bool, error) {
	for {
		u.printf("Would you like to play again? (y/n): ")
		line, err := u.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		u.printf("\n--- Please enter 'y' for yes or 'n' for no ---\n\n")
	}
}

func (u *UI) Feedback(guess game.Sequence, score game.Score) {
	u.printf("Your guess: %s\nResult: %s\n\n", guess, score)
}

func (u *UI) History(turns []game.Turn) {
	if len(turns) == 0 {
		u.printf("No guesses yet.\n")
		return
	}
	u.printf("\n=== Game History ===\n")
	for i, t := range turns {
		u.printf("Attempt %d: %s -> %s\n", i+1, t.Guess, t.Score)
	}
	u.printf("\n")
}

func (u *UI) Hint(value int, ok bool, left int) {
	if !ok {
		u.printf("No hints left.\n")
		return
	}
	u.printf("Hint: the secret contains %d (%d hints left)\n", value, left)
}

func (u *UI) Results(state game.State, secret game.Sequence, name string) {
	u.printf("\n========================================\n")
	if state == game.StateWon {
		u.printf("      * * * CONGRATULATIONS %s! * * *\n", strings.ToUpper(name))
		u.printf("               YOU WON!\n")
	} else {
		u.printf("      - - - GAME OVER %s - - -\n", strings.ToUpper(name))
		u.printf("       You ran out of attempts\n")
	}
	u.printf("\nThe secret combination was: %s\n", secret)
	u.printf("========================================\n\n")
}

func (u *UI) RemainingWarning(remaining int) {
	if remaining == 1 {
		u.printf("*** WARNING: LAST ATTEMPT! ***\n")
	}
}

func (u *UI) Message(msg string) { u.printf("%s\n", msg) }

func (u *UI) Error(msg string) { u.printf("Error: %s\n", msg) }

func example(shape game.Shape) string {
	parts := make([]string, shape.Length)
	for i := range parts {
		parts[i] = fmt.Sprint(shape.Min + i%max(shape.Span(), 1))
	}
	return strings.Join(parts, " ")
}
