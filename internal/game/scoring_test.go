package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var four = Shape{Length: 4, Min: 0, Max: 9}

func seq(values ...int) Sequence { return MustSequence(four, values...) }

func TestEvaluate_Cases(t *testing.T) {
	cases := []struct {
		name          string
		secret, guess Sequence
		digits, pos   int
	}{
		{name: "all match", secret: seq(0, 0, 1, 1), guess: seq(0, 0, 1, 1), digits: 4, pos: 4},
		{name: "no match", secret: seq(1, 2, 3, 4), guess: seq(5, 6, 7, 0), digits: 0, pos: 0},
		{name: "partial", secret: seq(1, 2, 3, 4), guess: seq(1, 4, 0, 2), digits: 3, pos: 1},
		{name: "duplicates in secret", secret: seq(1, 1, 1, 2), guess: seq(1, 1, 3, 4), digits: 2, pos: 2},
		{name: "duplicates in guess", secret: seq(1, 2, 3, 4), guess: seq(1, 1, 1, 1), digits: 1, pos: 1},
		{name: "repeats as multiset", secret: seq(1, 1, 2, 2), guess: seq(2, 2, 1, 1), digits: 4, pos: 0},
		{name: "mixed repeats", secret: seq(0, 0, 1, 1), guess: seq(0, 1, 0, 1), digits: 4, pos: 2},
		{name: "all misplaced", secret: seq(5, 4, 3, 2), guess: seq(4, 3, 2, 1), digits: 3, pos: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.secret, tc.guess)
			require.NoError(t, err)
			assert.Equal(t, Score{DigitMatches: tc.digits, PositionMatches: tc.pos, Length: 4}, got)
		})
	}
}

func TestEvaluate_LengthMismatch(t *testing.T) {
	short := MustSequence(Shape{Length: 3, Min: 0, Max: 9}, 1, 2, 3)

	_, err := Evaluate(seq(1, 2, 3, 4), short)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonWrongLength, reason)
}

func TestEvaluate_Absent(t *testing.T) {
	_, err := Evaluate(seq(1, 2, 3, 4), Sequence{})
	reason, _ := ReasonOf(err)
	assert.Equal(t, ReasonMissing, reason)
}

func TestEvaluate_Empty(t *testing.T) {
	empty := MustSequence(Shape{Length: 0, Min: 0, Max: 9})

	got, err := Evaluate(empty, empty)
	require.NoError(t, err)
	assert.Equal(t, Score{}, got)
	assert.True(t, got.Solved())
}

func randomSeq(r *rand.Rand, shape Shape) Sequence {
	values := make([]int, shape.Length)
	for i := range values {
		values[i] = shape.Min + r.IntN(shape.Max-shape.Min+1)
	}
	return MustSequence(shape, values...)
}

func TestEvaluate_Laws(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	shapes := []Shape{
		{Length: 1, Min: 0, Max: 1},
		{Length: 3, Min: 0, Max: 5},
		{Length: 4, Min: 0, Max: 7},
		{Length: 5, Min: 0, Max: 9},
		{Length: 6, Min: -2, Max: 2},
	}

	for _, shape := range shapes {
		for i := 0; i < 500; i++ {
			a, b := randomSeq(r, shape), randomSeq(r, shape)

			ab, err := Evaluate(a, b)
			require.NoError(t, err)
			ba, err := Evaluate(b, a)
			require.NoError(t, err)
			aa, err := Evaluate(a, a)
			require.NoError(t, err)

			if ab.PositionMatches < 0 || ab.PositionMatches > ab.DigitMatches || ab.DigitMatches > shape.Length {
				t.Fatalf("score(%s, %s)=%+v breaks 0 <= pos <= digits <= len", a, b, ab)
			}
			if ab != ba {
				t.Fatalf("score(%s, %s)=%+v but score(%s, %s)=%+v", a, b, ab, b, a, ba)
			}
			if aa.DigitMatches != shape.Length || aa.PositionMatches != shape.Length {
				t.Fatalf("score(%s, %s)=%+v want perfect", a, a, aa)
			}
		}
	}
}
