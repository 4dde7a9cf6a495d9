package selection

// RepairDivisions returns a copy of selections in which every numerical
// question sits in division 2. Multiple-choice questions keep whatever
// division they were given.
func RepairDivisions(selections []SelectedQuestion) []SelectedQuestion {
	out := make([]SelectedQuestion, len(selections))
	for i, q := range selections {
		out[i] = Repair(q)
	}
	return out
}

// Repair returns q with its division corrected for its answer format.
func Repair(q SelectedQuestion) SelectedQuestion {
	if q.Format == FormatNumerical {
		q.Division = DivisionTwo
	}
	return q
}

// NeedsRepair reports whether Repair would change q.
func NeedsRepair(q SelectedQuestion) bool {
	return q.Format == FormatNumerical && q.Division != DivisionTwo
}
