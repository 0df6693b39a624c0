package dense

import (
	"errors"
	"fmt"
)

// Common dense DFA errors
var (
	// ErrStateLimit indicates subset construction crossed the configured
	// state ceiling. This is a resource-safety guard against pathological
	// patterns, not a bug signal: the caller may retry with a higher
	// Config.MaxStates or reject the pattern.
	ErrStateLimit = errors.New("DFA state limit exceeded")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid DFA configuration")
)

// LimitError reports how far determinization got before hitting the
// configured ceiling. It unwraps to ErrStateLimit.
type LimitError struct {
	States      int // states allocated when the limit was crossed
	Transitions int // byte-class transitions allocated alongside them
	Limit       int // the configured ceiling
}

// Error implements the error interface
func (e *LimitError) Error() string {
	return fmt.Sprintf("DFA state limit exceeded: %d states (%d transitions) with limit %d",
		e.States, e.Transitions, e.Limit)
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *LimitError) Unwrap() error {
	return ErrStateLimit
}
