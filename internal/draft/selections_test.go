package draft

import (
	"testing"

	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/yamldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelections(t *testing.T) {
	data := []byte(`
section: Physics
questions:
  - {id: q-101, chapter: PHY01, difficulty: E, format: mcq}
  - {id: q-102, chapter: PHY02, difficulty: hard, division: 2}
  - {id: 103, chapter: PHY03, difficulty: medium, format: Integer}
  - {id: q-104, chapter: PHY01, difficulty: m, division: beta, format: mcq}
`)
	f, err := ParseSelections(data)
	require.NoError(t, err)
	assert.Equal(t, "Physics", f.Section)

	want := []selection.SelectedQuestion{
		{QuestionID: "q-101", Chapter: "PHY01", Difficulty: selection.DifficultyEasy, Division: selection.DivisionOne, Format: selection.FormatMCQ},
		{QuestionID: "q-102", Chapter: "PHY02", Difficulty: selection.DifficultyHard, Division: selection.DivisionTwo, Format: selection.FormatNumerical},
		{QuestionID: "103", Chapter: "PHY03", Difficulty: selection.DifficultyMedium, Division: selection.DivisionTwo, Format: selection.FormatNumerical},
		{QuestionID: "q-104", Chapter: "PHY01", Difficulty: selection.DifficultyMedium, Division: selection.DivisionTwo, Format: selection.FormatMCQ},
	}
	assert.Equal(t, want, f.Questions)
}

func TestParseSelections_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing questions", "section: Physics\n"},
		{"missing chapter", "questions:\n  - {id: q1, difficulty: E, division: 1}\n"},
		{"bad difficulty", "questions:\n  - {id: q1, chapter: PHY01, difficulty: extreme, division: 1}\n"},
		{"bad division", "questions:\n  - {id: q1, chapter: PHY01, difficulty: E, division: 3}\n"},
		{"no format or division", "questions:\n  - {id: q1, chapter: PHY01, difficulty: E}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSelections([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseSelections_SchemaError(t *testing.T) {
	_, err := ParseSelections([]byte("questions: 5\n"))
	var docErr *yamldoc.ErrInvalidDocument
	assert.ErrorAs(t, err, &docErr)
}
