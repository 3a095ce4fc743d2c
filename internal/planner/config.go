package planner

import (
	"github.com/yungbote/learnpath-backend/internal/platform/envutil"
)

// Config is the externally supplied tuning surface. None of these values
// appear as literals inside the pipeline stages.
type Config struct {
	// Alpha weighs duration in the edge cost.
	Alpha float64 `yaml:"alpha"`
	// Beta weighs 1-accuracy; the default penalizes low-accuracy items
	// harder than a few extra minutes.
	Beta float64 `yaml:"beta"`
	// K is the alternate path count.
	K int `yaml:"k"`
	// LatencyBoundMS is the real-time compliance threshold.
	LatencyBoundMS float64 `yaml:"latency_bound_ms"`
}

func DefaultConfig() Config {
	return Config{Alpha: 1, Beta: 5, K: 3, LatencyBoundMS: 200}
}

func LoadConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		Alpha:          envutil.Float("PLANNER_ALPHA", def.Alpha),
		Beta:           envutil.Float("PLANNER_BETA", def.Beta),
		K:              envutil.Int("PLANNER_K", def.K),
		LatencyBoundMS: envutil.Float("PLANNER_LATENCY_BOUND_MS", def.LatencyBoundMS),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Alpha <= 0 {
		c.Alpha = def.Alpha
	}
	if c.Beta < 0 {
		c.Beta = def.Beta
	}
	if c.K <= 0 {
		c.K = def.K
	}
	if c.LatencyBoundMS <= 0 {
		c.LatencyBoundMS = def.LatencyBoundMS
	}
	return c
}
