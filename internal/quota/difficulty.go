package quota

import "math"

const (
	baseMediumRatio = 0.5
	baseHardRatio   = 0.2

	// levelSpan maps importance levels 1..4 onto s in [0, 1].
	levelSpan = 3.0

	// floorEpsilon absorbs binary rounding so that e.g. 10*0.6 floors to 6.
	floorEpsilon = 1e-9
)

// SplitDifficulty splits a chapter's question total into easy, medium and
// hard counts. Weight 1 gets the baseline 50% medium / 20% hard; higher
// weights shift toward medium and hard by the configured slopes.
func SplitDifficulty(total, weight int, cfg Config) (easy, medium, hard int) {
	if total <= 0 {
		return 0, 0, 0
	}

	s := float64(weight-1) / levelSpan
	medium = max(0, floorInt(float64(total)*(baseMediumRatio+s*cfg.MediumSlope)))
	hard = max(0, floorInt(float64(total)*(baseHardRatio+s*cfg.HardSlope)))

	// Steep slopes can overshoot the total. Medium and hard are scaled down
	// together and medium takes the rounding, leaving no easy questions.
	if sum := medium + hard; sum > total {
		hard = hard * total / sum
		medium = total - hard
	}

	easy = max(0, total-medium-hard)
	if short := total - easy - medium - hard; short > 0 {
		medium += short
	}
	return easy, medium, hard
}

func floorInt(x float64) int {
	return int(math.Floor(x + floorEpsilon))
}
