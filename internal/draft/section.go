package draft

import (
	"fmt"
	"strings"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/syllabus"
)

// Section is one subject of a draft.
type Section struct {
	Name       string                       `json:"name"`
	Chapters   []syllabus.Chapter           `json:"chapters"`
	Config     quota.Config                 `json:"config"`
	Table      quota.Table                  `json:"table"`
	Selections []selection.SelectedQuestion `json:"selections"`
}

// Generate replaces the section's table with a freshly allocated one.
// Selections are kept.
func (s *Section) Generate(gen *quota.Generator) error {
	t, err := gen.Generate(s.Chapters, s.Config)
	if err != nil {
		return fmt.Errorf("generate %s: %w", s.Name, err)
	}
	s.Table = t
	return nil
}

// Validate checks the section's current table.
func (s *Section) Validate() quota.Result {
	return quota.Validate(s.Table)
}

// EditRow overwrites one field of a chapter's row and revalidates the
// whole table. The edit is applied even when it breaks the invariants; the
// returned result tells the editor what is now wrong.
func (s *Section) EditRow(code string, f quota.Field, value int) (quota.Result, error) {
	if err := s.Table.Set(code, f, value); err != nil {
		return quota.Result{}, err
	}
	return s.Validate(), nil
}

// Select adds a question to the section, moving it to division 2 when its
// format requires it. The chapter code is matched to the section's chapters
// case-insensitively and stored in their spelling. A question whose ID is
// already selected is ignored and Select reports false.
func (s *Section) Select(q selection.SelectedQuestion) (bool, error) {
	q.QuestionID = strings.TrimSpace(q.QuestionID)
	if q.QuestionID == "" {
		return false, fmt.Errorf("question id is required")
	}
	if _, err := selection.ParseDifficulty(string(q.Difficulty)); err != nil {
		return false, fmt.Errorf("question %s: %w", q.QuestionID, err)
	}
	if q.Division != selection.DivisionOne && q.Division != selection.DivisionTwo {
		return false, fmt.Errorf("question %s: division must be 1 or 2, got %d", q.QuestionID, q.Division)
	}
	if s.Has(q.QuestionID) {
		return false, nil
	}
	q.Chapter = s.chapterCode(q.Chapter)
	s.Selections = append(s.Selections, selection.Repair(q))
	return true, nil
}

// chapterCode returns the section's spelling of code, or code trimmed when
// no chapter matches.
func (s *Section) chapterCode(code string) string {
	code = strings.TrimSpace(code)
	for _, c := range s.Chapters {
		if strings.EqualFold(c.Code, code) {
			return c.Code
		}
	}
	return code
}

// Has reports whether the question is already selected.
func (s *Section) Has(id string) bool {
	for _, q := range s.Selections {
		if q.QuestionID == id {
			return true
		}
	}
	return false
}

// Deselect removes a question and reports whether it was present.
func (s *Section) Deselect(id string) bool {
	for i, q := range s.Selections {
		if q.QuestionID == id {
			s.Selections = append(s.Selections[:i], s.Selections[i+1:]...)
			return true
		}
	}
	return false
}

// Progress summarizes the selection against the table.
func (s *Section) Progress() selection.Summary {
	return selection.Summarize(s.Table, selection.RepairDivisions(s.Selections))
}

// Verdict runs final validation on the selection.
func (s *Section) Verdict() selection.FinalResult {
	return selection.ValidateFinal(selection.RepairDivisions(s.Selections), s.Table)
}
