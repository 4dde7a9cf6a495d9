package selection

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/abhisek/examdraft/internal/quota"
)

func sampleTable() quota.Table {
	return quota.Table{Rows: []quota.Row{
		{Code: "PHY01", Name: "Mechanics", DivisionOne: 9, DivisionTwo: 2, Easy: 3, Medium: 6, Hard: 2},
		{Code: "PHY02", Name: "Thermodynamics", DivisionOne: 7, DivisionTwo: 2, Easy: 3, Medium: 4, Hard: 2},
		{Code: "PHY03", Name: "Optics", DivisionOne: 4, DivisionTwo: 1, Easy: 2, Medium: 2, Hard: 1},
	}}
}

func sampleSelections() []SelectedQuestion {
	return []SelectedQuestion{
		{QuestionID: "q1", Chapter: "PHY01", Difficulty: DifficultyEasy, Division: DivisionOne, Format: FormatMCQ},
		{QuestionID: "q2", Chapter: "PHY01", Difficulty: DifficultyHard, Division: DivisionTwo, Format: FormatNumerical},
		{QuestionID: "q3", Chapter: "PHY02", Difficulty: DifficultyMedium, Division: DivisionOne, Format: FormatMCQ},
		{QuestionID: "q4", Chapter: "CHE01", Difficulty: DifficultyMedium, Division: DivisionOne, Format: FormatMCQ},
	}
}

func TestSummarize_Counts(t *testing.T) {
	s := Summarize(sampleTable(), sampleSelections())

	if s.Total != 4 || s.DivisionOne != 3 || s.DivisionTwo != 1 {
		t.Errorf("totals = (%d, %d, %d), want (4, 3, 1)", s.Total, s.DivisionOne, s.DivisionTwo)
	}

	want := map[string]ChapterProgress{
		"PHY01": {SelectedOne: 1, SelectedTwo: 1, RequiredOne: 9, RequiredTwo: 2},
		"PHY02": {SelectedOne: 1, SelectedTwo: 0, RequiredOne: 7, RequiredTwo: 2},
		"PHY03": {SelectedOne: 0, SelectedTwo: 0, RequiredOne: 4, RequiredTwo: 1},
	}
	if !reflect.DeepEqual(s.Chapters, want) {
		t.Errorf("Chapters = %+v, want %+v", s.Chapters, want)
	}
	if _, ok := s.Chapters["CHE01"]; ok {
		t.Error("chapter outside the table should not get an entry")
	}

	wantBands := map[Difficulty]BandProgress{
		DifficultyEasy:   {Selected: 1, Required: 8},
		DifficultyMedium: {Selected: 2, Required: 12},
		DifficultyHard:   {Selected: 1, Required: 5},
	}
	if !reflect.DeepEqual(s.Difficulty, wantBands) {
		t.Errorf("Difficulty = %+v, want %+v", s.Difficulty, wantBands)
	}

	if !reflect.DeepEqual(s.Order, []string{"PHY01", "PHY02", "PHY03"}) {
		t.Errorf("Order = %v", s.Order)
	}
	if s.Unassigned() != 1 {
		t.Errorf("Unassigned = %d, want 1", s.Unassigned())
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	table := sampleTable()
	sel := sampleSelections()
	a := Summarize(table, sel)
	b := Summarize(table, sel)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated Summarize differs:\n%+v\n%+v", a, b)
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	table := sampleTable()
	sel := sampleSelections()
	want := Summarize(table, sel)

	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 20; i++ {
		shuffled := make([]SelectedQuestion, len(sel))
		copy(shuffled, sel)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Summarize(table, shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d: summary differs", i)
		}
	}
}

func TestSummarize_AddOneTouchesOnlyItsCounters(t *testing.T) {
	table := sampleTable()
	sel := sampleSelections()
	before := Summarize(table, sel)

	added := SelectedQuestion{QuestionID: "q5", Chapter: "PHY03", Difficulty: DifficultyHard, Division: DivisionTwo, Format: FormatNumerical}
	after := Summarize(table, append(sel, added))

	if after.Total != before.Total+1 || after.DivisionTwo != before.DivisionTwo+1 || after.DivisionOne != before.DivisionOne {
		t.Errorf("totals: before %+v after %+v", before, after)
	}
	for code, cp := range before.Chapters {
		want := cp
		if code == "PHY03" {
			want.SelectedTwo++
		}
		if after.Chapters[code] != want {
			t.Errorf("chapter %s = %+v, want %+v", code, after.Chapters[code], want)
		}
	}
	for band, bp := range before.Difficulty {
		want := bp
		if band == DifficultyHard {
			want.Selected++
		}
		if after.Difficulty[band] != want {
			t.Errorf("band %s = %+v, want %+v", band, after.Difficulty[band], want)
		}
	}
}

func TestSummarize_EmptyInputs(t *testing.T) {
	s := Summarize(quota.Table{}, nil)
	if s.Total != 0 || len(s.Chapters) != 0 || len(s.Order) != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if len(s.Difficulty) != 3 {
		t.Errorf("Difficulty should have all bands, got %d", len(s.Difficulty))
	}
}

func TestSummarize_DoesNotRepair(t *testing.T) {
	sel := []SelectedQuestion{
		{QuestionID: "q1", Chapter: "PHY01", Difficulty: DifficultyEasy, Division: DivisionOne, Format: FormatNumerical},
	}
	s := Summarize(sampleTable(), sel)
	if s.DivisionOne != 1 || s.DivisionTwo != 0 {
		t.Errorf("summarizer must count as tagged, got (%d, %d)", s.DivisionOne, s.DivisionTwo)
	}
	if sel[0].Division != DivisionOne {
		t.Error("summarizer mutated its input")
	}
}
