// Package dense implements offline determinization of a Thompson NFA
// into a dense transition table, Moore minimization of that table, and
// the forward/reverse search primitives that execute it.
//
// Unlike a lazy DFA, every state is built ahead of time: compilation pays
// the full subset-construction cost once (guarded by a state ceiling) and
// matching is then a pure table walk with no cache, no fallback path and
// no mutation, so a compiled DFA is safe to share across goroutines.
//
// The transition alphabet is the NFA's byte equivalence classes plus two
// sentinel classes for the start-of-text and end-of-text virtual symbols;
// anchors consume the sentinels and never a literal input byte.
package dense

import (
	"fmt"

	"github.com/mrityunjai01/regex-dfa/nfa"
)

// StateID identifies a DFA state. State 0 is always the dead state.
type StateID uint32

// DeadState is the sink state: every transition out of it returns to it
// and it is never accepting. Reaching it means no match is possible from
// the current position.
const DeadState StateID = 0

// DFA is a compiled dense transition table plus accept metadata.
//
// The zero value is not usable; build one with Determinize. A DFA is
// immutable after construction and safe for concurrent use: searching
// reads the table and keeps all scratch state on the caller's stack.
type DFA struct {
	// table is the row-major transition table, numStates x alphabetLen.
	table []StateID

	// accept[s] reports whether state s contains an NFA match state.
	accept []bool

	// priority[s] is the minimal accept priority among the NFA match
	// states contributing to s; meaningful only when accept[s] is true.
	priority []int32

	// alphabetLen is the table row width: byte classes plus sentinels.
	alphabetLen int

	// classes maps input bytes to byte classes.
	classes nfa.ByteClasses

	// startClass and endClass are the sentinel columns for the
	// start-of-text and end-of-text virtual symbols.
	startClass, endClass int

	startAnchored   StateID
	startUnanchored StateID

	numStates int
}

// NumStates returns the number of DFA states, including the dead state.
func (d *DFA) NumStates() int {
	return d.numStates
}

// AlphabetLen returns the table row width: byte classes plus the two
// sentinel classes.
func (d *DFA) AlphabetLen() int {
	return d.alphabetLen
}

// StartAnchored returns the start state for anchored searches.
func (d *DFA) StartAnchored() StateID {
	return d.startAnchored
}

// StartUnanchored returns the start state for unanchored searches.
func (d *DFA) StartUnanchored() StateID {
	return d.startUnanchored
}

// IsAccept reports whether s is an accepting state.
func (d *DFA) IsAccept(s StateID) bool {
	return d.accept[s]
}

// Priority returns the accept priority of s (lower = preferred).
func (d *DFA) Priority(s StateID) int32 {
	return d.priority[s]
}

// Next returns the successor of s on the given class column.
func (d *DFA) Next(s StateID, class int) StateID {
	return d.table[int(s)*d.alphabetLen+class]
}

// NextByte returns the successor of s on input byte b.
func (d *DFA) NextByte(s StateID, b byte) StateID {
	return d.table[int(s)*d.alphabetLen+int(d.classes.Get(b))]
}

// nextStart returns the successor of s on the start-of-text symbol.
func (d *DFA) nextStart(s StateID) StateID {
	return d.table[int(s)*d.alphabetLen+d.startClass]
}

// nextEnd returns the successor of s on the end-of-text symbol.
func (d *DFA) nextEnd(s StateID) StateID {
	return d.table[int(s)*d.alphabetLen+d.endClass]
}

// ByteClasses returns the byte equivalence classes of the alphabet.
func (d *DFA) ByteClasses() *nfa.ByteClasses {
	return &d.classes
}

// Row returns a copy of the transition row for state s.
func (d *DFA) Row(s StateID) []StateID {
	row := make([]StateID, d.alphabetLen)
	copy(row, d.table[int(s)*d.alphabetLen:int(s+1)*d.alphabetLen])
	return row
}

// String returns a human-readable summary of the DFA
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, alphabet: %d, startAnchored: %d, startUnanchored: %d}",
		d.numStates, d.alphabetLen, d.startAnchored, d.startUnanchored)
}

// Fingerprint returns a canonical serialization of the transition
// function, independent of state numbering: states are renumbered in
// breadth-first discovery order from the start states and the rows,
// accept flags and priorities are serialized in that order.
//
// Two DFAs compiled from the same pattern compare equal by Fingerprint
// even if their internal state numbering differs.
func (d *DFA) Fingerprint() string {
	renum := make([]int, d.numStates)
	for i := range renum {
		renum[i] = -1
	}
	renum[DeadState] = 0
	order := []StateID{DeadState}

	queue := []StateID{d.startUnanchored, d.startAnchored}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if renum[s] != -1 {
			continue
		}
		renum[s] = len(order)
		order = append(order, s)
		for c := 0; c < d.alphabetLen; c++ {
			if t := d.Next(s, c); renum[t] == -1 {
				queue = append(queue, t)
			}
		}
	}

	out := fmt.Sprintf("alphabet=%d start=%d/%d\n",
		d.alphabetLen, renum[d.startUnanchored], renum[d.startAnchored])
	for _, s := range order {
		out += fmt.Sprintf("%d a=%v p=%d:", renum[s], d.accept[s], d.priority[s])
		for c := 0; c < d.alphabetLen; c++ {
			out += fmt.Sprintf(" %d", renum[d.Next(s, c)])
		}
		out += "\n"
	}
	return out
}
