package selection

import "github.com/abhisek/examdraft/internal/quota"

// ChapterProgress compares a chapter's selected counts to its targets.
type ChapterProgress struct {
	SelectedOne int `json:"selected_one"`
	SelectedTwo int `json:"selected_two"`
	RequiredOne int `json:"required_one"`
	RequiredTwo int `json:"required_two"`
}

// Complete reports whether both divisions exactly meet their targets.
func (c ChapterProgress) Complete() bool {
	return c.SelectedOne == c.RequiredOne && c.SelectedTwo == c.RequiredTwo
}

// BandProgress compares a difficulty band's selected count to its target.
type BandProgress struct {
	Selected int `json:"selected"`
	Required int `json:"required"`
}

// Summary is the live progress of a selection against a table.
type Summary struct {
	Total       int                         `json:"total"`
	DivisionOne int                         `json:"division_one"`
	DivisionTwo int                         `json:"division_two"`
	Chapters    map[string]ChapterProgress  `json:"chapters"`
	Difficulty  map[Difficulty]BandProgress `json:"difficulty"`

	// Order lists chapter codes in table order.
	Order []string `json:"order"`
}

// Summarize folds selections into per-chapter and per-band counters seeded
// with the table's targets. Selections for chapters missing from the table
// count toward the division and band totals only.
func Summarize(table quota.Table, selections []SelectedQuestion) Summary {
	s := Summary{
		Chapters:   make(map[string]ChapterProgress, len(table.Rows)),
		Difficulty: make(map[Difficulty]BandProgress, 3),
		Order:      make([]string, 0, len(table.Rows)),
	}

	for _, r := range table.Rows {
		if _, dup := s.Chapters[r.Code]; dup {
			continue
		}
		s.Chapters[r.Code] = ChapterProgress{RequiredOne: r.DivisionOne, RequiredTwo: r.DivisionTwo}
		s.Order = append(s.Order, r.Code)
	}

	easy, medium, hard := table.RequiredDifficulty()
	s.Difficulty[DifficultyEasy] = BandProgress{Required: easy}
	s.Difficulty[DifficultyMedium] = BandProgress{Required: medium}
	s.Difficulty[DifficultyHard] = BandProgress{Required: hard}

	for _, q := range selections {
		s.Total++

		cp, known := s.Chapters[q.Chapter]
		switch q.Division {
		case DivisionOne:
			s.DivisionOne++
			cp.SelectedOne++
		case DivisionTwo:
			s.DivisionTwo++
			cp.SelectedTwo++
		}
		if known {
			s.Chapters[q.Chapter] = cp
		}

		if band, ok := s.Difficulty[q.Difficulty]; ok {
			band.Selected++
			s.Difficulty[q.Difficulty] = band
		}
	}
	return s
}

// Unassigned returns how many selections reference chapters outside the
// table.
func (s Summary) Unassigned() int {
	inTable := 0
	for _, cp := range s.Chapters {
		inTable += cp.SelectedOne + cp.SelectedTwo
	}
	return s.DivisionOne + s.DivisionTwo - inTable
}
