package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the
// Compiler; it also tracks byte class boundaries as edges are added, so
// the finished NFA carries its own alphabet.
type Builder struct {
	states          []State
	startAnchored   StateID
	startUnanchored StateID
	byteClassSet    *ByteClassSet
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states:          make([]State, 0, capacity),
		startAnchored:   InvalidState,
		startUnanchored: InvalidState,
		byteClassSet:    NewByteClassSet(),
	}
}

// AddMatch adds a match (accepting) state with the given priority and
// returns its ID. Lower priority is preferred.
func (b *Builder) AddMatch(priority int32) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:       id,
		kind:     StateMatch,
		priority: priority,
	})
	return id
}

// AddByteRange adds a state that transitions on a single byte or byte
// range [lo, hi]. For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	b.byteClassSet.SetRange(lo, hi)

	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateByteRange,
		lo:   lo,
		hi:   hi,
		next: next,
	})
	return id
}

// AddSparse adds a state with multiple byte range transitions (character
// class). The transitions slice is copied to avoid aliasing issues.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	for _, tr := range transitions {
		b.byteClassSet.SetRange(tr.Lo, tr.Hi)
	}

	id := StateID(len(b.states))
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{
		id:          id,
		kind:        StateSparse,
		transitions: trans,
	})
	return id
}

// AddSplit adds a state with epsilon transitions to two states.
// The left target is preferred.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:    id,
		kind:  StateSplit,
		left:  left,
		right: right,
	})
	return id
}

// AddEpsilon adds a state with a single epsilon transition (no input consumed)
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateEpsilon,
		next: next,
	})
	return id
}

// AddLook adds a zero-width assertion state. The assertion consumes the
// corresponding virtual alphabet symbol, never an input byte.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateLook,
		look: look,
		next: next,
	})
	return id
}

// AddFail adds a dead state with no transitions
func (b *Builder) AddFail() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateFail,
	})
	return id
}

// Patch sets the dangling successor of a ByteRange, Epsilon or Look state.
// Returns ErrDanglingState-wrapped BuildError for states whose successors
// are fixed at creation (Split, Sparse, Match, Fail).
func (b *Builder) Patch(from, to StateID) error {
	if int(from) >= len(b.states) {
		return &BuildError{Message: "patch source out of range", StateID: from}
	}
	s := &b.states[from]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateLook:
		s.next = to
		return nil
	default:
		return &BuildError{Message: "state kind " + s.kind.String() + " is not patchable", StateID: from}
	}
}

// SetStarts records the anchored and unanchored start states.
func (b *Builder) SetStarts(anchored, unanchored StateID) {
	b.startAnchored = anchored
	b.startUnanchored = unanchored
}

// Build finalizes the NFA. It verifies that no reachable successor is
// dangling and computes the byte class partition from the edges added so
// far. The builder must not be reused afterwards.
func (b *Builder) Build() (*NFA, error) {
	if b.startAnchored == InvalidState || b.startUnanchored == InvalidState {
		return nil, &BuildError{Message: "start states not set", StateID: InvalidState}
	}

	for i := range b.states {
		s := &b.states[i]
		switch s.kind {
		case StateByteRange, StateEpsilon, StateLook:
			if s.next == InvalidState {
				return nil, &BuildError{Message: "unpatched successor", StateID: s.id}
			}
		case StateSplit:
			if s.left == InvalidState || s.right == InvalidState {
				return nil, &BuildError{Message: "unpatched split target", StateID: s.id}
			}
		case StateSparse:
			for _, tr := range s.transitions {
				if tr.Next == InvalidState {
					return nil, &BuildError{Message: "unpatched sparse target", StateID: s.id}
				}
			}
		}
	}

	return &NFA{
		states:          b.states,
		startAnchored:   b.startAnchored,
		startUnanchored: b.startUnanchored,
		byteClasses:     b.byteClassSet.ByteClasses(),
	}, nil
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap lets callers detect wiring failures with errors.Is.
func (e *BuildError) Unwrap() error {
	return ErrDanglingState
}
