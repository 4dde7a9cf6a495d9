package quota

import (
	"fmt"
	"strings"
)

// Section-wide quotas.
const (
	DivisionOneTotal = 20 // multiple-choice questions per section
	DivisionTwoTotal = 5  // numerical questions per section
)

// Row is one chapter's target counts.
type Row struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	DivisionOne int    `json:"division_one"`
	DivisionTwo int    `json:"division_two"`
	Easy        int    `json:"easy"`
	Medium      int    `json:"medium"`
	Hard        int    `json:"hard"`
}

// Total returns the chapter's question count across both divisions.
func (r Row) Total() int {
	return r.DivisionOne + r.DivisionTwo
}

// DifficultySum returns easy + medium + hard.
func (r Row) DifficultySum() int {
	return r.Easy + r.Medium + r.Hard
}

// Table is the per-chapter target quota of one section.
type Table struct {
	Rows []Row `json:"rows"`
}

// Sums returns the division-1 and division-2 totals.
func (t Table) Sums() (one, two int) {
	for _, r := range t.Rows {
		one += r.DivisionOne
		two += r.DivisionTwo
	}
	return one, two
}

// RequiredDifficulty returns the aggregate easy/medium/hard targets.
func (t Table) RequiredDifficulty() (easy, medium, hard int) {
	for _, r := range t.Rows {
		easy += r.Easy
		medium += r.Medium
		hard += r.Hard
	}
	return easy, medium, hard
}

// Row returns the row for a chapter code.
func (t Table) Row(code string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Code == code {
			return r, true
		}
	}
	return Row{}, false
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	return Table{Rows: rows}
}

// Field names an editable integer column of a Row.
type Field string

const (
	FieldDivisionOne Field = "division_one"
	FieldDivisionTwo Field = "division_two"
	FieldEasy        Field = "easy"
	FieldMedium      Field = "medium"
	FieldHard        Field = "hard"
)

// Fields returns the editable fields in display order.
func Fields() []Field {
	return []Field{FieldDivisionOne, FieldDivisionTwo, FieldEasy, FieldMedium, FieldHard}
}

// ParseField accepts a field name or its short alias (d1, d2, e, m, h).
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "division_one", "d1", "alpha":
		return FieldDivisionOne, nil
	case "division_two", "d2", "beta":
		return FieldDivisionTwo, nil
	case "easy", "e":
		return FieldEasy, nil
	case "medium", "m":
		return FieldMedium, nil
	case "hard", "h":
		return FieldHard, nil
	default:
		return "", fmt.Errorf("unknown field %q", s)
	}
}

// Label returns the column header for the field.
func (f Field) Label() string {
	switch f {
	case FieldDivisionOne:
		return "Div 1"
	case FieldDivisionTwo:
		return "Div 2"
	case FieldEasy:
		return "Easy"
	case FieldMedium:
		return "Medium"
	case FieldHard:
		return "Hard"
	default:
		return string(f)
	}
}

// Get returns the value of field f.
func (r Row) Get(f Field) int {
	switch f {
	case FieldDivisionOne:
		return r.DivisionOne
	case FieldDivisionTwo:
		return r.DivisionTwo
	case FieldEasy:
		return r.Easy
	case FieldMedium:
		return r.Medium
	case FieldHard:
		return r.Hard
	default:
		return 0
	}
}

// Set overwrites one field of the row for chapter code. It does not
// rebalance other fields; run Validate afterwards.
func (t *Table) Set(code string, f Field, value int) error {
	for i := range t.Rows {
		if t.Rows[i].Code != code {
			continue
		}
		r := &t.Rows[i]
		switch f {
		case FieldDivisionOne:
			r.DivisionOne = value
		case FieldDivisionTwo:
			r.DivisionTwo = value
		case FieldEasy:
			r.Easy = value
		case FieldMedium:
			r.Medium = value
		case FieldHard:
			r.Hard = value
		default:
			return fmt.Errorf("unknown field %q", f)
		}
		return nil
	}
	return fmt.Errorf("chapter %q not in table", code)
}
