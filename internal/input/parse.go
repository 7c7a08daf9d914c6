// Package input turns player text into game sequences.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"example.com/mastermind/internal/game"
)

var ErrSyntax = errors.New("invalid input")

// ParseError reports text that is not a list of numbers.
type ParseError struct {
	Input string
	Token string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return "input is blank"
	}
	return fmt.Sprintf("invalid number format: %q", e.Token)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// ParseSequence reads "1 2 3 4" or, when text has no whitespace and exactly
// shape.Length characters, the compact form "1234". Length and range problems
// come back as *game.ValidationError.
func ParseSequence(text string, shape game.Shape) (game.Sequence, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return game.Sequence{}, &ParseError{Input: text}
	}

	tokens := strings.Fields(text)
	if len(tokens) == 1 && shape.Length > 1 && len(text) == shape.Length && allDigits(text) {
		tokens = strings.Split(text, "")
	}

	values := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return game.Sequence{}, &ParseError{Input: text, Token: tok}
		}
		values = append(values, n)
	}
	return game.NewSequence(values, shape)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
