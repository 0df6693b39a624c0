package dense

// Shortest walks the DFA forward from start and returns the earliest
// offset at which an accepting state is entered. When anchored is false
// the walk begins at the unanchored start state, so the match may begin
// anywhere at or after start.
//
// The start-of-text sentinel is fed only when start is the true
// beginning of the haystack; the end-of-text sentinel is fed when the
// walk runs off the end without accepting, so patterns like `a*$` can
// still accept there.
func (d *DFA) Shortest(haystack []byte, start int, anchored bool) (int, bool) {
	if start < 0 || start > len(haystack) {
		return 0, false
	}
	s := d.startUnanchored
	if anchored {
		s = d.startAnchored
	}
	if start == 0 {
		s = d.nextStart(s)
	}
	if d.accept[s] {
		return start, true
	}
	for i := start; i < len(haystack); i++ {
		s = d.NextByte(s, haystack[i])
		if s == DeadState {
			return 0, false
		}
		if d.accept[s] {
			return i + 1, true
		}
	}
	s = d.nextEnd(s)
	if d.accept[s] {
		return len(haystack), true
	}
	return 0, false
}

// Longest walks the DFA forward from start in anchored mode and returns
// the offset of the last accepting state observed. Unlike Shortest it
// keeps consuming after the first accept: a greedy quantifier's DFA
// accepts early and keeps accepting later, and the match end is the
// final accept, not the first.
func (d *DFA) Longest(haystack []byte, start int) (int, bool) {
	if start < 0 || start > len(haystack) {
		return 0, false
	}
	s := d.startAnchored
	if start == 0 {
		s = d.nextStart(s)
	}
	last, found := 0, false
	if d.accept[s] {
		last, found = start, true
	}
	for i := start; i < len(haystack); i++ {
		s = d.NextByte(s, haystack[i])
		if s == DeadState {
			return last, found
		}
		if d.accept[s] {
			last, found = i+1, true
		}
	}
	s = d.nextEnd(s)
	if d.accept[s] {
		last, found = len(haystack), true
	}
	return last, found
}

// ReverseLeftmost walks this DFA backward over haystack[start:end],
// consuming bytes from end-1 down to start, and returns the smallest
// offset at which it was in an accepting state. The receiver must be a
// DFA compiled from the reversed pattern: its start-of-text sentinel
// corresponds to the end of the original input and its end-of-text
// sentinel to offset 0.
//
// Tracking the last accept seen while scanning backward is what
// recovers the leftmost match start from a known match end.
func (d *DFA) ReverseLeftmost(haystack []byte, start, end int) (int, bool) {
	if start < 0 || end > len(haystack) || start > end {
		return 0, false
	}
	s := d.startAnchored
	if end == len(haystack) {
		s = d.nextStart(s)
	}
	last, found := 0, false
	if d.accept[s] {
		last, found = end, true
	}
	for i := end - 1; i >= start; i-- {
		s = d.NextByte(s, haystack[i])
		if s == DeadState {
			return last, found
		}
		if d.accept[s] {
			last, found = i, true
		}
	}
	if start == 0 {
		s = d.nextEnd(s)
		if d.accept[s] {
			last, found = 0, true
		}
	}
	return last, found
}
