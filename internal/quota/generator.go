package quota

import (
	"math/rand/v2"

	"github.com/abhisek/examdraft/internal/syllabus"
)

// Generator builds distribution tables.
type Generator struct {
	alloc *Allocator
}

// NewGenerator returns a Generator whose random buffer step draws from src.
// A nil src uses the process-wide generator.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{alloc: NewAllocator(src)}
}

// Generate builds a table with a generator seeded from cfg.Seed, unseeded when nil.
func Generate(chapters []syllabus.Chapter, cfg Config) (Table, error) {
	return NewGenerator(cfg.Source()).Generate(chapters, cfg)
}

// Generate allocates the division-1 and division-2 quotas across chapters
// and splits each chapter's total by difficulty. Rows follow the input
// chapter order.
func (g *Generator) Generate(chapters []syllabus.Chapter, cfg Config) (Table, error) {
	if err := cfg.Validate(); err != nil {
		return Table{}, err
	}

	weights := syllabus.Weights(chapters)
	one, err := g.alloc.allocate(weights, DivisionOneTotal, cfg.MinPerChapter, cfg.buffer())
	if err != nil {
		return Table{}, err
	}
	two, err := g.alloc.allocate(weights, DivisionTwoTotal, cfg.MinPerChapter, cfg.buffer())
	if err != nil {
		return Table{}, err
	}

	rows := make([]Row, len(chapters))
	for i, ch := range chapters {
		easy, medium, hard := SplitDifficulty(one[i]+two[i], ch.Weight(), cfg)
		rows[i] = Row{
			Code:        ch.Code,
			Name:        ch.Name,
			DivisionOne: one[i],
			DivisionTwo: two[i],
			Easy:        easy,
			Medium:      medium,
			Hard:        hard,
		}
	}
	return Table{Rows: rows}, nil
}
