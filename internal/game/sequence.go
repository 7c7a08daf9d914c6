package game

import (
	"strconv"
	"strings"
)

// Shape is the length and inclusive value range every Sequence of a game shares.
type Shape struct {
	Length int `json:"length"`
	Min    int `json:"min"`
	Max    int `json:"max"`
}

func (s Shape) Validate() error {
	if s.Length < 0 {
		return validationf(ReasonBadShape, "length must not be negative, got %d", s.Length)
	}
	if s.Min > s.Max {
		return validationf(ReasonBadShape, "min %d is greater than max %d", s.Min, s.Max)
	}
	if s.Span() <= 0 {
		return validationf(ReasonBadShape, "range %d-%d is too wide", s.Min, s.Max)
	}
	return nil
}

// Span is the number of distinct values in [Min, Max]. It wraps to a
// non-positive value when the range does not fit in an int.
func (s Shape) Span() int { return s.Max - s.Min + 1 }

// Contains reports whether v lies within [Min, Max].
func (s Shape) Contains(v int) bool { return v >= s.Min && v <= s.Max }

// Sequence is an immutable, validated list of digits: a secret or a guess.
// The zero value is the absent sequence.
type Sequence struct {
	values []int
	shape  Shape
	valid  bool
}

// NewSequence validates values against shape. A wrong length is reported
// before any out-of-range value.
func NewSequence(values []int, shape Shape) (Sequence, error) {
	if err := shape.Validate(); err != nil {
		return Sequence{}, err
	}
	if len(values) != shape.Length {
		return Sequence{}, validationf(ReasonWrongLength,
			"must have exactly %d numbers, got %d", shape.Length, len(values))
	}
	for _, v := range values {
		if !shape.Contains(v) {
			return Sequence{}, validationf(ReasonOutOfRange,
				"number %d must be between %d-%d", v, shape.Min, shape.Max)
		}
	}

	cp := make([]int, len(values))
	copy(cp, values)
	return Sequence{values: cp, shape: shape, valid: true}, nil
}

// MustSequence is NewSequence for literals known to be valid; it panics otherwise.
func MustSequence(shape Shape, values ...int) Sequence {
	s, err := NewSequence(values, shape)
	if err != nil {
		panic(err)
	}
	return s
}

// IsZero reports whether s is the absent sequence.
func (s Sequence) IsZero() bool { return !s.valid }

func (s Sequence) Len() int { return len(s.values) }

func (s Sequence) Shape() Shape { return s.shape }

func (s Sequence) At(i int) int { return s.values[i] }

// Values returns a copy of the digits.
func (s Sequence) Values() []int {
	cp := make([]int, len(s.values))
	copy(cp, s.values)
	return cp
}

// Equal is order-sensitive.
func (s Sequence) Equal(o Sequence) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// String joins the digits with single spaces, e.g. "1 2 3 4".
func (s Sequence) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
