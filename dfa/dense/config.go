package dense

import "fmt"

// Config configures offline determinization.
type Config struct {
	// MaxStates is the maximum number of DFA states subset construction
	// may allocate, counting the dead state. Crossing the ceiling fails
	// compilation with ErrStateLimit.
	//
	// Default: 10,000 states. Each state costs one transition-table row
	// of alphabet width, so the ceiling also bounds total transitions.
	//
	// Patterns with wide alternations or large counted repetitions can
	// blow up combinatorially even over a compressed alphabet; the
	// ceiling is the safety property that makes compiling
	// attacker-influenced patterns tolerable.
	MaxStates int

	// Minimize runs partition refinement after determinization, merging
	// behaviorally equivalent states. On by default; switching it off
	// trades table size for compile time.
	Minimize bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
		Minimize:  true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates <= 0 {
		return fmt.Errorf("%w: MaxStates must be > 0", ErrInvalidConfig)
	}
	return nil
}

// WithMaxStates returns a new config with the specified state ceiling
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// WithMinimize returns a new config with minimization enabled/disabled
func (c Config) WithMinimize(enabled bool) Config {
	c.Minimize = enabled
	return c
}
