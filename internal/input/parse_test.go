package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/mastermind/internal/game"
)

func TestParseSequence(t *testing.T) {
	shape := game.Normal.Shape

	cases := []struct {
		name   string
		in     string
		want   []int
		syntax bool
		reason game.Reason
	}{
		{name: "spaced", in: "1 2 3 4", want: []int{1, 2, 3, 4}},
		{name: "extra spaces", in: "  1   2 3\t4 ", want: []int{1, 2, 3, 4}},
		{name: "compact", in: "0011", want: []int{0, 0, 1, 1}},
		{name: "blank", in: "   ", syntax: true},
		{name: "letters", in: "1 2 a 4", syntax: true},
		{name: "compact with letter", in: "12a4", syntax: true},
		{name: "too few", in: "1 2 3", reason: game.ReasonWrongLength},
		{name: "compact too long", in: "12345", reason: game.ReasonWrongLength},
		{name: "out of range", in: "1 2 3 8", reason: game.ReasonOutOfRange},
		{name: "negative", in: "-1 2 3 4", reason: game.ReasonOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSequence(tc.in, shape)
			switch {
			case tc.syntax:
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrSyntax))
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
			case tc.reason != "":
				reason, ok := game.ReasonOf(err)
				require.True(t, ok, "err=%v", err)
				assert.Equal(t, tc.reason, reason)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got.Values())
				assert.Equal(t, shape, got.Shape())
			}
		})
	}
}
