package dense

import (
	"fmt"
	"testing"
)

// TestMinimizeReducesStates: the raw subset automaton carries
// distinguishable-by-construction but equivalent states.
func TestMinimizeReducesStates(t *testing.T) {
	// Each alternation branch compiles its own 'd' state, so subset
	// construction emits three distinct but equivalent mid-states.
	raw := compileDFA(t, "ad|bd|cd", Config{MaxStates: 1000, Minimize: false})
	min := Minimize(raw)
	if min.NumStates() >= raw.NumStates() {
		t.Errorf("minimized %d states, raw %d, want a reduction", min.NumStates(), raw.NumStates())
	}
}

// TestMinimizeIdempotent: minimizing a minimal automaton reproduces it
func TestMinimizeIdempotent(t *testing.T) {
	patterns := []string{"abc", "(a|b)*c", "[0-9]+", "^x$"}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			min := compileDFA(t, pattern, Config{MaxStates: 1000, Minimize: true})
			again := Minimize(min)
			if again.NumStates() != min.NumStates() {
				t.Errorf("second pass changed state count: %d -> %d", min.NumStates(), again.NumStates())
			}
			if again.Fingerprint() != min.Fingerprint() {
				t.Error("second pass changed the automaton")
			}
		})
	}
}

// TestMinimizePreservesLanguage: raw and minimized automata agree on a
// corpus of inputs.
func TestMinimizePreservesLanguage(t *testing.T) {
	inputs := []string{
		"", "a", "b", "ab", "abc", "abd", "abe", "abf",
		"xabc", "abcx", "aabbcc", "abcabd",
	}
	for _, pattern := range []string{"abc|abd", "a(b|c)*d", "^ab", "ab$"} {
		t.Run(pattern, func(t *testing.T) {
			raw := compileDFA(t, pattern, Config{MaxStates: 1000, Minimize: false})
			min := Minimize(raw)
			for _, input := range inputs {
				b := []byte(input)
				rawEnd, rawOK := raw.Shortest(b, 0, false)
				minEnd, minOK := min.Shortest(b, 0, false)
				if rawOK != minOK || rawEnd != minEnd {
					t.Errorf("input %q: raw = (%d, %v), minimized = (%d, %v)",
						input, rawEnd, rawOK, minEnd, minOK)
				}
			}
		})
	}
}

// TestMinimizeNoDuplicateStates: no two states of a minimal automaton
// may share a transition row and accept metadata.
func TestMinimizeNoDuplicateStates(t *testing.T) {
	for _, pattern := range []string{"ad|bd|cd", "(x|y)+z", "[0-9]{1,3}"} {
		t.Run(pattern, func(t *testing.T) {
			min := compileDFA(t, pattern, Config{MaxStates: 1000, Minimize: true})
			seen := map[string]StateID{}
			for s := 0; s < min.NumStates(); s++ {
				id := StateID(s)
				key := fmt.Sprintf("%v|%v|%d", min.Row(id), min.IsAccept(id), min.Priority(id))
				if prev, ok := seen[key]; ok {
					t.Errorf("states %d and %d are indistinguishable", prev, id)
				}
				seen[key] = id
			}
		})
	}
}

// TestMinimizeKeepsDeadState: identity 0 stays the dead state
func TestMinimizeKeepsDeadState(t *testing.T) {
	min := compileDFA(t, "xyz", Config{MaxStates: 1000, Minimize: true})
	if min.IsAccept(DeadState) {
		t.Error("dead state accepting after minimization")
	}
	for c := 0; c < min.AlphabetLen(); c++ {
		if min.Next(DeadState, c) != DeadState {
			t.Errorf("dead state escapes on class %d after minimization", c)
		}
	}
}
