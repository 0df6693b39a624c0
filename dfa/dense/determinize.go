package dense

import (
	"github.com/mrityunjai01/regex-dfa/internal/conv"
	"github.com/mrityunjai01/regex-dfa/internal/sparse"
	"github.com/mrityunjai01/regex-dfa/nfa"
)

// Determinize converts an NFA into a dense DFA via subset construction.
//
// Each DFA state is a canonical (sorted, deduplicated) set of NFA state
// IDs closed under epsilon transitions; the memoization table keyed by
// that canonical form is what bounds the DFA to at most 2^|NFA| states,
// and in practice far fewer. Construction is a work-queue algorithm: the
// two start closures seed the queue, and every unprocessed state gets one
// transition computed per alphabet class.
//
// The configured MaxStates ceiling is enforced on every allocation;
// crossing it aborts with ErrStateLimit and no DFA is returned.
//
// Determinization is inherently sequential (each discovery depends on
// lookups against states discovered so far) and must not be run
// concurrently for one pattern; distinct patterns may compile in
// parallel since all state, including the alphabet, is threaded through
// the determinizer rather than shared.
func Determinize(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	det := &determinizer{
		nfa:      n,
		config:   config,
		classes:  *n.ByteClasses(),
		reps:     n.ByteClasses().Representatives(),
		memo:     make(map[string]StateID),
		seen:     sparse.NewSet(conv.IntToUint32(n.States())),
		scratch:  make([]nfa.StateID, 0, 16),
		alphabet: n.ByteClasses().TotalClasses(),
	}

	d, err := det.run()
	if err != nil {
		return nil, err
	}
	if config.Minimize {
		d = Minimize(d)
	}
	return d, nil
}

// determinizer holds the working state of one subset construction.
type determinizer struct {
	nfa      *nfa.NFA
	config   Config
	classes  nfa.ByteClasses
	reps     []byte // one representative byte per byte class
	alphabet int    // total classes including sentinels

	// sets[s] is the canonical NFA state set identified with DFA state s.
	sets [][]nfa.StateID

	// memo maps a canonical set key to its allocated DFA state.
	memo map[string]StateID

	// table rows are appended as states are allocated.
	table    []StateID
	accept   []bool
	priority []int32

	queue []StateID

	// seen and scratch are reused across closure computations.
	seen    *sparse.Set
	scratch []nfa.StateID
}

func (det *determinizer) run() (*DFA, error) {
	// State 0 is the dead state: the empty set, transitions all to self.
	if _, err := det.alloc(nil); err != nil {
		return nil, err
	}

	unanchored, err := det.startState(det.nfa.StartUnanchored())
	if err != nil {
		return nil, err
	}
	anchored, err := det.startState(det.nfa.StartAnchored())
	if err != nil {
		return nil, err
	}

	for len(det.queue) > 0 {
		s := det.queue[0]
		det.queue = det.queue[1:]

		for class := 0; class < det.alphabet; class++ {
			next, merr := det.moveClass(det.sets[s], class)
			if merr != nil {
				return nil, merr
			}
			det.table[int(s)*det.alphabet+class] = next
		}
	}

	return &DFA{
		table:           det.table,
		accept:          det.accept,
		priority:        det.priority,
		alphabetLen:     det.alphabet,
		classes:         det.classes,
		startClass:      det.classes.StartTextClass(),
		endClass:        det.classes.EndTextClass(),
		startAnchored:   anchored,
		startUnanchored: unanchored,
		numStates:       len(det.sets),
	}, nil
}

// startState allocates (or reuses) the DFA state for the epsilon closure
// of a single NFA start state.
func (det *determinizer) startState(start nfa.StateID) (StateID, error) {
	set := det.closure([]nfa.StateID{start})
	return det.intern(set)
}

// moveClass computes the successor state set for one alphabet class.
//
// Byte classes take the byte-range edges of every member, using the
// class representative (all bytes of a class behave identically by
// construction of the partition). Sentinel classes cross Look states
// whose assertion matches and are the identity on every other member:
// the virtual symbol is observed, not consumed as data.
func (det *determinizer) moveClass(set []nfa.StateID, class int) (StateID, error) {
	var frontier []nfa.StateID

	switch class {
	case det.classes.StartTextClass(), det.classes.EndTextClass():
		want := nfa.LookStartText
		if class == det.classes.EndTextClass() {
			want = nfa.LookEndText
		}
		for _, sid := range set {
			s := det.nfa.State(sid)
			if s == nil {
				continue
			}
			if look, next := s.LookAssert(); s.Kind() == nfa.StateLook {
				if look == want {
					frontier = append(frontier, next)
				} else {
					// An assertion for the other symbol stays pending.
					frontier = append(frontier, sid)
				}
				continue
			}
			frontier = append(frontier, sid)
		}
	default:
		b := det.reps[class]
		for _, sid := range set {
			s := det.nfa.State(sid)
			if s == nil {
				continue
			}
			switch s.Kind() {
			case nfa.StateByteRange:
				if lo, hi, next := s.ByteRange(); lo <= b && b <= hi {
					frontier = append(frontier, next)
				}
			case nfa.StateSparse:
				for _, tr := range s.Transitions() {
					if tr.Lo <= b && b <= tr.Hi {
						frontier = append(frontier, tr.Next)
					}
				}
			}
		}
	}

	if len(frontier) == 0 {
		return DeadState, nil
	}
	return det.intern(det.closure(frontier))
}

// closure computes the epsilon closure of the frontier and returns it as
// a canonical sorted, deduplicated slice. Only Split and Epsilon states
// are crossed; Look states are closure members awaiting their virtual
// symbol, and byte-range states await input.
func (det *determinizer) closure(frontier []nfa.StateID) []nfa.StateID {
	det.seen.Clear()
	det.scratch = det.scratch[:0]
	stack := append([]nfa.StateID(nil), frontier...)

	for _, sid := range frontier {
		det.seen.Insert(uint32(sid))
	}

	for len(stack) > 0 {
		sid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s := det.nfa.State(sid)
		if s == nil {
			continue
		}
		switch s.Kind() {
		case nfa.StateEpsilon:
			if next := s.Epsilon(); !det.seen.Contains(uint32(next)) {
				det.seen.Insert(uint32(next))
				stack = append(stack, next)
			}
		case nfa.StateSplit:
			left, right := s.Split()
			if !det.seen.Contains(uint32(left)) {
				det.seen.Insert(uint32(left))
				stack = append(stack, left)
			}
			if !det.seen.Contains(uint32(right)) {
				det.seen.Insert(uint32(right))
				stack = append(stack, right)
			}
		}
	}

	for _, v := range det.seen.Values() {
		det.scratch = append(det.scratch, nfa.StateID(v))
	}
	sortStateIDs(det.scratch)

	out := make([]nfa.StateID, len(det.scratch))
	copy(out, det.scratch)
	return out
}

// intern returns the DFA state for a canonical set, allocating one and
// enqueueing it for processing if it has not been seen before.
//
// Two syntactically different frontiers that close to the same set must
// land on the same key here; that is the correctness-critical invariant
// of determinization. The key is the raw little-endian bytes of the
// sorted IDs.
func (det *determinizer) intern(set []nfa.StateID) (StateID, error) {
	if len(set) == 0 {
		return DeadState, nil
	}
	key := setKey(set)
	if id, ok := det.memo[key]; ok {
		return id, nil
	}
	id, err := det.alloc(set)
	if err != nil {
		return DeadState, err
	}
	det.memo[key] = id
	det.queue = append(det.queue, id)
	return id, nil
}

// alloc appends a new DFA state for the given set, enforcing MaxStates.
func (det *determinizer) alloc(set []nfa.StateID) (StateID, error) {
	if len(det.sets) >= det.config.MaxStates {
		return DeadState, &LimitError{
			States:      len(det.sets),
			Transitions: len(det.table),
			Limit:       det.config.MaxStates,
		}
	}

	id := StateID(conv.IntToUint32(len(det.sets)))
	det.sets = append(det.sets, set)

	row := make([]StateID, det.alphabet)
	for i := range row {
		row[i] = DeadState
	}
	det.table = append(det.table, row...)

	isAccept := false
	var prio int32
	for _, sid := range set {
		if s := det.nfa.State(sid); s != nil && s.IsMatch() {
			if !isAccept || s.Priority() < prio {
				prio = s.Priority()
			}
			isAccept = true
		}
	}
	det.accept = append(det.accept, isAccept)
	det.priority = append(det.priority, prio)
	return id, nil
}

// setKey encodes a canonical set as a string for memoization.
func setKey(set []nfa.StateID) string {
	buf := make([]byte, 0, len(set)*4)
	for _, sid := range set {
		buf = append(buf, byte(sid), byte(sid>>8), byte(sid>>16), byte(sid>>24))
	}
	return string(buf)
}

// sortStateIDs performs insertion sort on NFA state IDs.
// Closure outputs are small and nearly sorted already (the sparse set
// preserves insertion order), so insertion sort beats the general sorts
// without allocating.
func sortStateIDs(states []nfa.StateID) {
	for i := 1; i < len(states); i++ {
		key := states[i]
		j := i - 1
		for j >= 0 && states[j] > key {
			states[j+1] = states[j]
			j--
		}
		states[j+1] = key
	}
}
