package quota

import "testing"

func TestSplitDifficulty(t *testing.T) {
	def := DefaultConfig()
	tests := []struct {
		name               string
		total, weight      int
		cfg                Config
		easy, medium, hard int
	}{
		{"zero total", 0, 3, def, 0, 0, 0},
		{"baseline weight 1", 10, 1, def, 3, 5, 2},
		{"baseline floors", 5, 1, def, 2, 2, 1},
		{"weight 2", 9, 2, def, 3, 4, 2},
		{"weight 3", 11, 3, def, 3, 6, 2},
		{"weight 4 exact float", 10, 4, Config{MediumSlope: 0.1, HardSlope: 0.1}, 1, 6, 3},
		{"negative slopes clamp at zero", 10, 4, Config{MediumSlope: -1, HardSlope: -1}, 10, 0, 0},
		{"overshoot scales both", 10, 4, Config{MediumSlope: 1, HardSlope: 1}, 0, 6, 4},
		{"overshoot keeps hard share", 20, 4, Config{MediumSlope: 0.5, HardSlope: 1}, 0, 10, 10},
		{"partial overshoot", 10, 4, Config{MediumSlope: 0.3, HardSlope: 0.1}, 0, 8, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, m, h := SplitDifficulty(tt.total, tt.weight, tt.cfg)
			if e != tt.easy || m != tt.medium || h != tt.hard {
				t.Errorf("SplitDifficulty(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.total, tt.weight, e, m, h, tt.easy, tt.medium, tt.hard)
			}
			if e+m+h != tt.total {
				t.Errorf("sum = %d, want %d", e+m+h, tt.total)
			}
		})
	}
}

func TestSplitDifficulty_WeightOneIgnoresSlopes(t *testing.T) {
	for _, slope := range []float64{-5, -0.3, 0, 0.25, 3, 100} {
		cfg := Config{MediumSlope: slope, HardSlope: -slope}
		for total := 0; total <= 25; total++ {
			e, m, h := SplitDifficulty(total, 1, cfg)
			wantM := total / 2
			wantH := total * 2 / 10
			if m != wantM || h != wantH || e != total-wantM-wantH {
				t.Fatalf("slope %v total %d: got (%d, %d, %d), want (%d, %d, %d)",
					slope, total, e, m, h, total-wantM-wantH, wantM, wantH)
			}
		}
	}
}

func TestSplitDifficulty_AlwaysCloses(t *testing.T) {
	slopes := []float64{-2, -0.5, 0, 0.1, 0.5, 1, 4}
	for _, ms := range slopes {
		for _, hs := range slopes {
			cfg := Config{MediumSlope: ms, HardSlope: hs}
			for weight := 1; weight <= 6; weight++ {
				for total := 0; total <= 25; total++ {
					e, m, h := SplitDifficulty(total, weight, cfg)
					if e < 0 || m < 0 || h < 0 || e+m+h != total {
						t.Fatalf("ms=%v hs=%v w=%d total=%d: got (%d, %d, %d)", ms, hs, weight, total, e, m, h)
					}
				}
			}
		}
	}
}
