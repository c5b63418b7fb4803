// Package config holds runtime configuration: defaults, the values bound to
// CLI flags, and pre-run validation.
package config

import (
	"fmt"
)

// Defaults.
const (
	DefaultQuality = 80
	DefaultSpeed   = 6
	DefaultWorkers = 4
)

// Config holds all runtime settings for one invocation. It is populated by
// [Default] and then mutated by flag binding before being validated.
type Config struct {
	// Inputs (set from positional args).
	Inputs []string

	// Output.
	OutputDir string // Empty: write alongside each source file.
	Overwrite bool

	// Encoding.
	Quality int // 0-100, higher is better.
	Speed   int // 0-10, lower is slower and better quality.

	// Processing.
	Workers   int
	Recursive bool

	// Logging.
	Verbose bool
	Quiet   bool
	LogFile string
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Quality:   DefaultQuality,
		Speed:     DefaultSpeed,
		Workers:   DefaultWorkers,
		Recursive: true,
	}
}

// Validate checks ranged fields before any conversion work starts. A
// violation is a usage error, not a per-file outcome.
func (c *Config) Validate() error {
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be in range 0-100, got %d", c.Quality)
	}
	if c.Speed < 0 || c.Speed > 10 {
		return fmt.Errorf("speed must be in range 0-10, got %d", c.Speed)
	}
	if c.Workers < 1 {
		return fmt.Errorf("parallel workers must be at least 1, got %d", c.Workers)
	}
	if len(c.Inputs) == 0 {
		return fmt.Errorf("at least one input path is required")
	}
	return nil
}
