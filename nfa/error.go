// Package nfa builds Thompson NFAs with byte-range and assertion edges
// from parsed regexp/syntax trees.
//
// The NFA is the middle of the compilation pipeline: a syntax tree comes
// in, an immutable automaton over a compressed byte alphabet comes out,
// and the dfa/dense package turns that automaton into an executable
// transition table. There is deliberately no execution engine here.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrUnsupported indicates the syntax tree contains a construct that
	// requires non-regular semantics (word boundaries, lookaround). Such
	// constructs are rejected before any state is emitted, never
	// approximated.
	ErrUnsupported = errors.New("unsupported regex construct")

	// ErrInvalidRange indicates a malformed code point range (inverted or
	// out-of-range bounds) reached the alphabet layer. This is an upstream
	// contract violation by the syntax tree producer, not user input error.
	ErrInvalidRange = errors.New("invalid code point range")

	// ErrTooComplex indicates the pattern exceeded compilation limits
	// (recursion depth or expanded repetition size).
	ErrTooComplex = errors.New("pattern too complex")

	// ErrDanglingState indicates an internal wiring failure during NFA
	// construction; it should never escape a released build.
	ErrDanglingState = errors.New("dangling NFA state")
)

// CompileError wraps NFA compilation errors with the offending construct.
type CompileError struct {
	// Op names the syntax tree node that caused the failure, when known.
	Op  string
	Err error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("NFA compilation failed at %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
