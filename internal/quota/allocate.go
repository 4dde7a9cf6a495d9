package quota

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Allocator splits a division total across chapters in proportion to
// their weights.
//
// An Allocator built with a non-nil source owns that source and is not
// safe for concurrent use. NewAllocator(nil) draws from the global
// generator and may be shared.
type Allocator struct {
	// Buffer selects how the rounding remainder is distributed.
	Buffer BufferStrategy

	rng *rand.Rand
}

// NewAllocator returns an Allocator using src for the random buffer step.
// A nil src uses the process-wide generator.
func NewAllocator(src rand.Source) *Allocator {
	a := &Allocator{Buffer: BufferRandom}
	if src != nil {
		a.rng = rand.New(src)
	}
	return a
}

// Allocate returns one count per weight, summing exactly to total. Each
// chapter gets minPerChapter plus its floored weighted share of the rest;
// the rounding deficit is then handed out one question per chapter.
func (a *Allocator) Allocate(weights []int, total, minPerChapter int) ([]int, error) {
	return a.allocate(weights, total, minPerChapter, a.Buffer)
}

func (a *Allocator) allocate(weights []int, total, minPerChapter int, buffer BufferStrategy) ([]int, error) {
	n := len(weights)
	if n == 0 {
		return nil, fmt.Errorf("%w: no chapters to allocate", ErrInvalidConfiguration)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: total must be >= 0, got %d", ErrInvalidConfiguration, total)
	}
	if minPerChapter < 0 {
		return nil, fmt.Errorf("%w: min per chapter must be >= 0, got %d", ErrInvalidConfiguration, minPerChapter)
	}

	weightSum := 0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: weight %d is negative (%d)", ErrInvalidConfiguration, i, w)
		}
		weightSum += w
	}
	if weightSum == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidConfiguration)
	}

	reserved := n * minPerChapter
	if total < reserved {
		return nil, fmt.Errorf("%w: total %d cannot cover %d chapters at %d each",
			ErrInvalidConfiguration, total, n, minPerChapter)
	}

	free := total - reserved
	counts := make([]int, n)
	remainders := make([]int, n)
	assigned := 0
	for i, w := range weights {
		share := free * w
		counts[i] = minPerChapter + share/weightSum
		remainders[i] = share % weightSum
		assigned += counts[i]
	}

	deficit := total - assigned
	if deficit == 0 {
		return counts, nil
	}

	var order []int
	switch buffer {
	case BufferLargestRemainder:
		order = largestRemainderOrder(weights, remainders)
	default:
		order = a.perm(n)
	}
	for _, i := range order[:deficit] {
		counts[i]++
	}
	return counts, nil
}

func (a *Allocator) perm(n int) []int {
	if a.rng == nil {
		return rand.Perm(n)
	}
	return a.rng.Perm(n)
}

// largestRemainderOrder ranks chapters by fractional remainder, then
// weight, then position.
func largestRemainderOrder(weights, remainders []int) []int {
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		i, j := order[x], order[y]
		if remainders[i] != remainders[j] {
			return remainders[i] > remainders[j]
		}
		return weights[i] > weights[j]
	})
	return order
}
