package draft

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/syllabus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func physics() []syllabus.Chapter {
	return []syllabus.Chapter{
		{Code: "PHY01", Name: "Mechanics", Level: 5},
		{Code: "PHY02", Name: "Thermodynamics", Level: 3},
		{Code: "PHY03", Name: "Optics", Level: 2},
	}
}

func newSection(t *testing.T) (*Draft, *Section) {
	t.Helper()
	d := New("JEE-2024-01", "mock paper")
	s, err := d.AddSection("Physics", physics(), quota.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, s.Generate(quota.NewGenerator(rand.NewPCG(1, 2))))
	return d, s
}

func TestNew(t *testing.T) {
	d := New("  JEE-2024-01 ", "")
	assert.Equal(t, "JEE-2024-01", d.Code)
	assert.Equal(t, FormatVersion, d.FormatVersion)
	assert.NotEqual(t, d.ID, New("x", "").ID)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestAddSection(t *testing.T) {
	d := New("D", "")
	_, err := d.AddSection("Physics", physics(), quota.DefaultConfig())
	require.NoError(t, err)

	_, err = d.AddSection("physics", physics(), quota.DefaultConfig())
	assert.ErrorIs(t, err, ErrDuplicateSection)

	_, err = d.AddSection("Chemistry", nil, quota.DefaultConfig())
	assert.Error(t, err)

	_, err = d.AddSection("Maths", physics(), quota.Config{MinPerChapter: -1})
	assert.ErrorIs(t, err, quota.ErrInvalidConfiguration)

	_, err = d.Section("Biology")
	assert.ErrorIs(t, err, ErrUnknownSection)

	require.NoError(t, d.RemoveSection("PHYSICS"))
	assert.Empty(t, d.Sections)
	assert.ErrorIs(t, d.RemoveSection("Physics"), ErrUnknownSection)
}

func TestSectionGenerate(t *testing.T) {
	_, s := newSection(t)
	require.Len(t, s.Table.Rows, 3)
	assert.True(t, s.Validate().Valid)
}

func TestEditRow(t *testing.T) {
	_, s := newSection(t)
	row, _ := s.Table.Row("PHY01")

	res, err := s.EditRow("PHY01", quota.FieldEasy, row.Easy+1)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "PHY01")

	res, err = s.EditRow("PHY01", quota.FieldEasy, row.Easy)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	_, err = s.EditRow("CHE01", quota.FieldEasy, 1)
	assert.Error(t, err)
}

func TestSelectRepairsAndDedupes(t *testing.T) {
	_, s := newSection(t)

	added, err := s.Select(selection.SelectedQuestion{
		QuestionID: "q1", Chapter: "PHY01", Difficulty: selection.DifficultyEasy,
		Division: selection.DivisionOne, Format: selection.FormatNumerical,
	})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, selection.DivisionTwo, s.Selections[0].Division)

	added, err = s.Select(selection.SelectedQuestion{
		QuestionID: "q1", Chapter: "PHY02", Difficulty: selection.DifficultyHard,
		Division: selection.DivisionOne, Format: selection.FormatMCQ,
	})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, s.Selections, 1)

	_, err = s.Select(selection.SelectedQuestion{QuestionID: "", Difficulty: selection.DifficultyEasy, Division: 1})
	assert.Error(t, err)
	_, err = s.Select(selection.SelectedQuestion{QuestionID: "q2", Difficulty: "X", Division: 1})
	assert.Error(t, err)
	_, err = s.Select(selection.SelectedQuestion{QuestionID: "q3", Difficulty: selection.DifficultyEasy, Division: 3})
	assert.Error(t, err)

	assert.True(t, s.Deselect("q1"))
	assert.False(t, s.Deselect("q1"))
	assert.Empty(t, s.Selections)
}

func TestSelectMatchesChapterCase(t *testing.T) {
	_, s := newSection(t)

	_, err := s.Select(selection.SelectedQuestion{
		QuestionID: "q1", Chapter: " phy01", Difficulty: selection.DifficultyEasy,
		Division: selection.DivisionTwo, Format: selection.FormatMCQ,
	})
	require.NoError(t, err)
	_, err = s.Select(selection.SelectedQuestion{
		QuestionID: "q2", Chapter: "che01", Difficulty: selection.DifficultyEasy,
		Division: selection.DivisionOne, Format: selection.FormatMCQ,
	})
	require.NoError(t, err)

	assert.Equal(t, "PHY01", s.Selections[0].Chapter)
	assert.Equal(t, "che01", s.Selections[1].Chapter)

	p := s.Progress()
	assert.Equal(t, 1, p.Chapters["PHY01"].SelectedTwo)
	assert.Equal(t, 1, p.Unassigned())
	for _, w := range s.Verdict().Warnings {
		assert.NotContains(t, w, "PHY01")
	}
}

func TestProgressRepairsStoredSelections(t *testing.T) {
	_, s := newSection(t)
	// Bypass Select to simulate a selection stored before repair existed.
	s.Selections = append(s.Selections, selection.SelectedQuestion{
		QuestionID: "q1", Chapter: "PHY01", Difficulty: selection.DifficultyEasy,
		Division: selection.DivisionOne, Format: selection.FormatNumerical,
	})

	p := s.Progress()
	assert.Equal(t, 0, p.DivisionOne)
	assert.Equal(t, 1, p.DivisionTwo)
	assert.Equal(t, 1, p.Chapters["PHY01"].SelectedTwo)
}

// fill selects exactly the table's quotas.
func fill(t *testing.T, s *Section) {
	t.Helper()
	n := 0
	for _, r := range s.Table.Rows {
		bands := []selection.Difficulty{}
		for i := 0; i < r.Easy; i++ {
			bands = append(bands, selection.DifficultyEasy)
		}
		for i := 0; i < r.Medium; i++ {
			bands = append(bands, selection.DifficultyMedium)
		}
		for i := 0; i < r.Hard; i++ {
			bands = append(bands, selection.DifficultyHard)
		}
		for i, b := range bands {
			n++
			q := selection.SelectedQuestion{
				QuestionID: r.Code + "-" + string(rune('a'+i)),
				Chapter:    r.Code,
				Difficulty: b,
				Division:   selection.DivisionOne,
				Format:     selection.FormatMCQ,
			}
			if i >= r.DivisionOne {
				q.Division = selection.DivisionTwo
				q.Format = selection.FormatNumerical
			}
			_, err := s.Select(q)
			require.NoError(t, err)
		}
	}
	require.Equal(t, quota.DivisionOneTotal+quota.DivisionTwoTotal, n)
}

func TestReady(t *testing.T) {
	assert.False(t, New("empty", "").Ready())

	d, s := newSection(t)
	assert.False(t, d.Ready())
	assert.NotEmpty(t, d.Issues())

	fill(t, s)
	assert.True(t, s.Verdict().IsValid)
	assert.True(t, d.Ready(), "issues: %v", d.Issues())

	row, _ := s.Table.Row("PHY02")
	_, err := s.EditRow("PHY02", quota.FieldHard, row.Hard+1)
	require.NoError(t, err)
	assert.False(t, d.Ready())
	for _, issue := range d.Issues() {
		assert.Contains(t, issue, "Physics: ")
	}
}

func TestEncodeDecode(t *testing.T) {
	d, s := newSection(t)
	fill(t, s)

	b, err := Encode(d)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, s.Table, got.Sections[0].Table)
	assert.Equal(t, s.Selections, got.Sections[0].Selections)
	assert.True(t, got.Ready())
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat("v1.0.0"))
	assert.NoError(t, CheckFormat("v1.4.2"))

	for _, v := range []string{"v2.0.0", "v0.9.0", "1.0.0", ""} {
		err := CheckFormat(v)
		assert.True(t, errors.Is(err, ErrIncompatibleFormat), "version %q: %v", v, err)
	}

	_, err := Decode([]byte(`{"code":"X","format_version":"v2.0.0"}`))
	assert.ErrorIs(t, err, ErrIncompatibleFormat)
}
