package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateMatch represents a match (accepting) state
	StateMatch StateKind = iota

	// StateByteRange represents a single byte or byte range transition [lo, hi]
	StateByteRange

	// StateSparse represents multiple byte-range transitions (character class)
	StateSparse

	// StateSplit represents an epsilon transition to 2 states.
	// The left target is preferred; for quantifiers this ordering encodes
	// greedy (loop first) vs lazy (exit first).
	StateSplit

	// StateEpsilon represents an epsilon transition to 1 state
	StateEpsilon

	// StateLook represents a zero-width assertion consuming a virtual
	// alphabet symbol (start-of-text or end-of-text), never an input byte
	StateLook

	// StateFail represents a dead state (no valid transitions)
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Look identifies the assertion carried by a StateLook state.
type Look uint8

const (
	// LookStartText asserts the true start of input (virtual symbol at offset 0)
	LookStartText Look = iota

	// LookEndText asserts the true end of input (virtual symbol past the last byte)
	LookEndText
)

// Reversed returns the assertion with start and end swapped.
// What is consumed before an assertion in the forward direction is
// consumed after it in the backward direction.
func (l Look) Reversed() Look {
	if l == LookStartText {
		return LookEndText
	}
	return LookStartText
}

// String returns a human-readable representation of the assertion
func (l Look) String() string {
	switch l {
	case LookStartText:
		return "StartText"
	case LookEndText:
		return "EndText"
	default:
		return fmt.Sprintf("UnknownLook(%d)", l)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For ByteRange: single byte or range [lo, hi]
	lo, hi byte
	next   StateID // target state for ByteRange/Epsilon/Look

	// For Sparse: multiple byte ranges with corresponding targets
	transitions []Transition

	// For Split: epsilon transitions to two states, left preferred
	left, right StateID

	// For Look: the assertion kind
	look Look

	// For Match: accept priority, lower = preferred
	priority int32
}

// Transition represents a byte range and target state for sparse transitions.
type Transition struct {
	Lo   byte    // inclusive lower bound
	Hi   byte    // inclusive upper bound
	Next StateID // target state
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// Priority returns the accept priority for Match states (lower = preferred).
// Returns 0 for non-Match states.
func (s *State) Priority() int32 {
	if s.kind == StateMatch {
		return s.priority
	}
	return 0
}

// ByteRange returns the byte range for ByteRange states.
// Returns (0, 0, InvalidState) for non-ByteRange states.
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	if s.kind == StateByteRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Split returns the two target states for Split states, in preference order.
// Returns (InvalidState, InvalidState) for non-Split states.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target state for Epsilon states.
// Returns InvalidState for non-Epsilon states.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// LookAssert returns the assertion and target for Look states.
// Returns (0, InvalidState) for non-Look states.
func (s *State) LookAssert() (Look, StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// Transitions returns the list of transitions for Sparse states.
// Returns nil for non-Sparse states.
func (s *State) Transitions() []Transition {
	if s.kind == StateSparse {
		return s.transitions
	}
	return nil
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match p%d)", s.id, s.priority)
	case StateByteRange:
		if s.lo == s.hi {
			return fmt.Sprintf("State(%d, ByteRange 0x%02X -> %d)", s.id, s.lo, s.next)
		}
		return fmt.Sprintf("State(%d, ByteRange [0x%02X-0x%02X] -> %d)", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("State(%d, Sparse %d transitions)", s.id, len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateLook:
		return fmt.Sprintf("State(%d, Look %s -> %d)", s.id, s.look, s.next)
	case StateFail:
		return fmt.Sprintf("State(%d, Fail)", s.id)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA represents a compiled Thompson NFA with byte-range and assertion edges.
// It is the result of compiling a regexp/syntax.Regexp tree, and it exists to
// be determinized; there is no direct execution engine for it.
//
// The NFA is immutable once built and safe for concurrent reads.
type NFA struct {
	// states contains all NFA states indexed by StateID
	states []State

	// startAnchored is the start state for anchored searches.
	// Points directly to the compiled pattern.
	startAnchored StateID

	// startUnanchored is the start state for unanchored searches.
	// Points to a lazy (?s:.)*? prefix so a single forward scan can try
	// every starting offset. Equals startAnchored for ^-anchored patterns.
	startUnanchored StateID

	// byteClasses is the byte equivalence partition induced by every
	// byte-range edge in the automaton. The DFA uses it as its alphabet.
	byteClasses ByteClasses
}

// StartAnchored returns the start state for anchored searches
func (n *NFA) StartAnchored() StateID {
	return n.startAnchored
}

// StartUnanchored returns the start state for unanchored searches
func (n *NFA) StartUnanchored() StateID {
	return n.startUnanchored
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch returns true if the given state is a match state
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// ByteClasses returns the byte equivalence classes for this NFA.
func (n *NFA) ByteClasses() *ByteClasses {
	return &n.byteClasses
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, startAnchored: %d, startUnanchored: %d, classes: %d}",
		len(n.states), n.startAnchored, n.startUnanchored, n.byteClasses.AlphabetLen())
}
