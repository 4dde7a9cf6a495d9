package cmd

import (
	"github.com/abhisek/examdraft/internal/quota"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addConfigFlags registers the allocation tuning flags with their defaults.
func addConfigFlags(fs *pflag.FlagSet) {
	def := quota.DefaultConfig()
	fs.Int("min", def.MinPerChapter, "Minimum questions per chapter in each division")
	fs.Float64("medium-slope", def.MediumSlope, "Medium difficulty slope per importance step")
	fs.Float64("hard-slope", def.HardSlope, "Hard difficulty slope per importance step")
	fs.String("buffer", string(def.Buffer), "Remainder strategy: random or largest-remainder")
	fs.Uint64("seed", 0, "Seed for the random remainder step (unseeded when omitted)")
}

// configFromFlags builds a quota.Config from the tuning flags.
func configFromFlags(cmd *cobra.Command) (quota.Config, error) {
	fs := cmd.Flags()
	cfg := quota.DefaultConfig()
	cfg.MinPerChapter, _ = fs.GetInt("min")
	cfg.MediumSlope, _ = fs.GetFloat64("medium-slope")
	cfg.HardSlope, _ = fs.GetFloat64("hard-slope")
	buf, _ := fs.GetString("buffer")
	cfg.Buffer = quota.BufferStrategy(buf)
	if fs.Changed("seed") {
		seed, _ := fs.GetUint64("seed")
		cfg.SetSeed(seed)
	}
	return cfg, cfg.Validate()
}
