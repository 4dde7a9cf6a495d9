package selection

import (
	"fmt"
	"strings"
)

// Difficulty is a difficulty band.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "E"
	DifficultyMedium Difficulty = "M"
	DifficultyHard   Difficulty = "H"
)

// Difficulties returns the bands in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty accepts a band code or name, case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "easy":
		return DifficultyEasy, nil
	case "m", "medium":
		return DifficultyMedium, nil
	case "h", "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// Label returns the display name of the band.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Format is the intrinsic answer format of a question.
type Format string

const (
	FormatMCQ       Format = "mcq"
	FormatNumerical Format = "numerical"
)

// ParseFormat accepts the question-bank type names as well as the
// canonical format names.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq", "multiple_choice", "multiple-choice":
		return FormatMCQ, nil
	case "numerical", "numeric", "integer":
		return FormatNumerical, nil
	default:
		return "", fmt.Errorf("unknown answer format %q", s)
	}
}

// Division is the answer-format bucket a selection counts toward.
type Division int

const (
	DivisionOne Division = 1 // multiple choice
	DivisionTwo Division = 2 // numerical
)

// ParseDivision accepts 1/2 or the alpha/beta section names.
func ParseDivision(s string) (Division, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "one", "alpha", "a":
		return DivisionOne, nil
	case "2", "two", "beta", "b":
		return DivisionTwo, nil
	default:
		return 0, fmt.Errorf("unknown division %q", s)
	}
}

// SelectedQuestion is a question picked for a section, with the tags the
// quota engine counts.
type SelectedQuestion struct {
	QuestionID string     `json:"question_id" yaml:"question_id"`
	Chapter    string     `json:"chapter" yaml:"chapter"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Division   Division   `json:"division" yaml:"division"`
	Format     Format     `json:"format" yaml:"format"`
}
