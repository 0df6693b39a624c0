package nfa

import (
	"errors"
	"testing"
)

// TestBuilderLinearChain wires a two-byte matcher by hand
func TestBuilderLinearChain(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch(0)
	second := b.AddByteRange('b', 'b', match)
	first := b.AddByteRange('a', 'a', second)
	b.SetStarts(first, first)

	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if n.States() != 3 {
		t.Errorf("States() = %d, want 3", n.States())
	}
	if !n.IsMatch(match) {
		t.Error("match state not reported as match")
	}
	s := n.State(first)
	if lo, hi, next := s.ByteRange(); lo != 'a' || hi != 'a' || next != second {
		t.Errorf("first = [%c, %c] -> %d, want [a, a] -> %d", lo, hi, next, second)
	}
}

// TestBuilderPatch fills dangling successors after creation
func TestBuilderPatch(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch(0)
	eps := b.AddEpsilon(InvalidState)
	if err := b.Patch(eps, match); err != nil {
		t.Fatalf("Patch(epsilon) error: %v", err)
	}
	b.SetStarts(eps, eps)
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
}

// TestBuilderPatchRejectsFixedKinds: split, sparse, match and fail
// successors are fixed at creation.
func TestBuilderPatchRejectsFixedKinds(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch(0)
	split := b.AddSplit(match, match)
	sparse := b.AddSparse([]Transition{{Lo: 'a', Hi: 'z', Next: match}})
	fail := b.AddFail()

	for _, id := range []StateID{match, split, sparse, fail} {
		if err := b.Patch(id, match); err == nil {
			t.Errorf("Patch(%d) succeeded, want error", id)
		} else if !errors.Is(err, ErrDanglingState) {
			t.Errorf("Patch(%d) error = %v, want ErrDanglingState", id, err)
		}
	}
}

// TestBuilderBuildRejectsDangling: an unpatched successor fails Build
func TestBuilderBuildRejectsDangling(t *testing.T) {
	b := NewBuilder()
	eps := b.AddEpsilon(InvalidState)
	b.SetStarts(eps, eps)
	_, err := b.Build()
	if !errors.Is(err, ErrDanglingState) {
		t.Errorf("Build() error = %v, want ErrDanglingState", err)
	}
}

// TestBuilderBuildRejectsMissingStarts
func TestBuilderBuildRejectsMissingStarts(t *testing.T) {
	b := NewBuilder()
	b.AddMatch(0)
	if _, err := b.Build(); err == nil {
		t.Error("Build() without starts succeeded, want error")
	}
}

// TestBuilderAlphabetTracking: added edges shape the byte classes
func TestBuilderAlphabetTracking(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch(0)
	r := b.AddByteRange('a', 'f', match)
	b.SetStarts(r, r)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	bc := n.ByteClasses()
	if bc.Get('a') != bc.Get('f') {
		t.Error("bytes of one range split across classes")
	}
	if bc.Get('a') == bc.Get('g') {
		t.Error("range boundary lost")
	}
}
