package syllabus

// Chapter is a weighted topic bucket questions are tagged with.
type Chapter struct {
	// Code is the short identifier used in question tags, e.g. "PHY01".
	// Unique within a subject.
	Code string `yaml:"code" json:"code"`

	// Name is the display name, e.g. "Mechanics".
	Name string `yaml:"name" json:"name"`

	// Level is the importance level (>= 1). It drives the chapter's share
	// of both the division and the difficulty quotas.
	Level int `yaml:"level" json:"level"`
}

// Weight returns the allocation weight of the chapter.
func (c Chapter) Weight() int {
	return c.Level
}

// Subject groups the chapters of one exam section, e.g. "Physics".
type Subject struct {
	Name     string    `yaml:"name" json:"name"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

// Weights returns the weight of every chapter in order.
func Weights(chapters []Chapter) []int {
	w := make([]int, len(chapters))
	for i, c := range chapters {
		w[i] = c.Weight()
	}
	return w
}
