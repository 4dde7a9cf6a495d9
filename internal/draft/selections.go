package draft

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/yamldoc"
)

var selectionSchema = yamldoc.Schema{
	Name: "selections",
	Definition: `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "section": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "chapter", "difficulty"],
        "properties": {
          "id": {"type": ["string", "integer"]},
          "chapter": {"type": "string", "minLength": 1},
          "difficulty": {"type": "string"},
          "division": {"type": ["string", "integer"]},
          "format": {"type": "string"}
        }
      }
    }
  }
}`,
}

// SelectionFile is a batch of selections read from YAML:
//
//	section: Physics
//	questions:
//	  - {id: q-101, chapter: PHY01, difficulty: E, format: mcq}
//	  - {id: q-102, chapter: PHY02, difficulty: hard, division: 2}
type SelectionFile struct {
	Section   string                       `yaml:"section"`
	Questions []selection.SelectedQuestion `yaml:"-"`
}

type rawSelection struct {
	ID         string `yaml:"id"`
	Chapter    string `yaml:"chapter"`
	Difficulty string `yaml:"difficulty"`
	Division   string `yaml:"division"`
	Format     string `yaml:"format"`
}

// LoadSelections reads a selection file from disk.
func LoadSelections(path string) (*SelectionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selections: %w", err)
	}
	return ParseSelections(data)
}

// ParseSelections validates and decodes a selection file. A missing format
// is inferred from the division; a missing division from the format.
func ParseSelections(data []byte) (*SelectionFile, error) {
	var doc struct {
		Section   string         `yaml:"section"`
		Questions []rawSelection `yaml:"questions"`
	}
	if err := yamldoc.Decode(data, selectionSchema, &doc); err != nil {
		return nil, err
	}

	out := &SelectionFile{Section: strings.TrimSpace(doc.Section)}
	var errs []string
	for i, r := range doc.Questions {
		q, err := r.toSelected()
		if err != nil {
			errs = append(errs, fmt.Sprintf("question %d (%s): %v", i+1, r.ID, err))
			continue
		}
		out.Questions = append(out.Questions, q)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("selection file invalid:\n  %s", strings.Join(errs, "\n  "))
	}
	return out, nil
}

func (r rawSelection) toSelected() (selection.SelectedQuestion, error) {
	q := selection.SelectedQuestion{
		QuestionID: strings.TrimSpace(r.ID),
		Chapter:    strings.TrimSpace(r.Chapter),
	}
	if q.QuestionID == "" {
		return q, fmt.Errorf("id is required")
	}

	d, err := selection.ParseDifficulty(r.Difficulty)
	if err != nil {
		return q, err
	}
	q.Difficulty = d

	if r.Format != "" {
		if q.Format, err = selection.ParseFormat(r.Format); err != nil {
			return q, err
		}
	}
	if r.Division != "" {
		if q.Division, err = selection.ParseDivision(r.Division); err != nil {
			return q, err
		}
	}

	switch {
	case r.Format == "" && r.Division == "":
		return q, fmt.Errorf("either format or division is required")
	case r.Format == "":
		q.Format = selection.FormatMCQ
		if q.Division == selection.DivisionTwo {
			q.Format = selection.FormatNumerical
		}
	case r.Division == "":
		q.Division = selection.DivisionOne
		if q.Format == selection.FormatNumerical {
			q.Division = selection.DivisionTwo
		}
	}
	return q, nil
}
