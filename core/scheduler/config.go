package scheduler

import "time"

// Config holds configuration for periodic sync passes.
type Config struct {
	// Enabled toggles the scheduler in the server process.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// FullInterval is the time between full passes. Zero disables them.
	FullInterval time.Duration `mapstructure:"full_interval" default:"24h"`
	// IncrementalInterval is the time between incremental passes. Zero disables them.
	IncrementalInterval time.Duration `mapstructure:"incremental_interval" default:"15m"`
	// RunOnStart runs a full pass of every family when the scheduler starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"false"`
}
