package game

import (
	"fmt"
	"strings"
)

// Difficulty is a named Shape preset.
type Difficulty struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Shape Shape  `json:"shape"`
}

var (
	Easy   = Difficulty{Name: "easy", Level: 1, Shape: Shape{Length: 3, Min: 0, Max: 5}}
	Normal = Difficulty{Name: "normal", Level: 2, Shape: Shape{Length: 4, Min: 0, Max: 7}}
	Hard   = Difficulty{Name: "hard", Level: 3, Shape: Shape{Length: 5, Min: 0, Max: 9}}
)

// Difficulties lists the presets in menu order.
func Difficulties() []Difficulty { return []Difficulty{Easy, Normal, Hard} }

// ParseDifficulty accepts a preset name ("hard") or its menu level ("3").
// An empty string selects Normal.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Normal, nil
	}
	for _, d := range Difficulties() {
		if s == d.Name || s == fmt.Sprint(d.Level) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty %q (want easy|normal|hard or 1-3)", s)
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s (%d numbers, %d-%d)", d.Name, d.Shape.Length, d.Shape.Min, d.Shape.Max)
}
