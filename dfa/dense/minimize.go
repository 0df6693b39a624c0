package dense

// Minimize returns an equivalent DFA with the minimum number of states.
//
// It first discards states unreachable from either start and then runs
// Moore partition refinement: states begin grouped by their acceptance
// and priority, and a group splits whenever two members disagree on the
// group of some successor. The fixed point is the coarsest partition
// where equivalent states share a group, and each group collapses to one
// state in the output.
//
// The dead state keeps identity 0 in the output so the zero-test fast
// path in the search loops survives minimization. Minimizing an already
// minimal DFA reproduces it.
func Minimize(d *DFA) *DFA {
	reach := reachable(d)

	// Initial partition: accepting states group by priority; group 0 is
	// everything else, dead state included, so trap states can stay
	// fused with it. Unreachable states are forced into group 0 too;
	// their rows are garbage and must not count.
	group := make([]int, d.numStates)
	byPriority := map[int32]int{}
	for s := 0; s < d.numStates; s++ {
		if !reach[s] || !d.accept[s] {
			group[s] = 0
			continue
		}
		g, ok := byPriority[d.priority[s]]
		if !ok {
			g = len(byPriority) + 1
			byPriority[d.priority[s]] = g
		}
		group[s] = g
	}
	numGroups := len(byPriority) + 1

	// Refine until stable. Each round re-keys every state by its own
	// group plus the groups of all its successors; states whose keys
	// diverge split apart. Termination: the group count only grows and
	// is bounded by the state count.
	sig := make([]byte, 0, (d.alphabetLen+1)*4)
	for {
		next := make(map[string]int)
		newGroup := make([]int, d.numStates)
		for s := 0; s < d.numStates; s++ {
			if !reach[s] {
				newGroup[s] = newGroup[DeadState]
				continue
			}
			sig = sig[:0]
			sig = appendInt(sig, group[s])
			for c := 0; c < d.alphabetLen; c++ {
				sig = appendInt(sig, group[d.Next(StateID(s), c)])
			}
			g, ok := next[string(sig)]
			if !ok {
				g = len(next)
				next[string(sig)] = g
			}
			newGroup[s] = g
		}
		if len(next) == numGroups {
			break
		}
		numGroups = len(next)
		group = newGroup
	}

	// Renumber so the dead state's group is 0, then the remaining groups
	// in order of first appearance. One representative per group.
	remap := make([]StateID, numGroups)
	for i := range remap {
		remap[i] = StateID(0xFFFFFFFF)
	}
	rep := make([]int, 0, numGroups)
	remap[group[DeadState]] = DeadState
	rep = append(rep, int(DeadState))
	for s := 0; s < d.numStates; s++ {
		if remap[group[s]] == StateID(0xFFFFFFFF) {
			remap[group[s]] = StateID(len(rep))
			rep = append(rep, s)
		}
	}
	numStates := len(rep)

	table := make([]StateID, numStates*d.alphabetLen)
	accept := make([]bool, numStates)
	priority := make([]int32, numStates)
	for newID, oldID := range rep {
		for c := 0; c < d.alphabetLen; c++ {
			table[newID*d.alphabetLen+c] = remap[group[d.Next(StateID(oldID), c)]]
		}
		accept[newID] = d.accept[oldID]
		priority[newID] = d.priority[oldID]
	}
	return &DFA{
		table:           table,
		accept:          accept,
		priority:        priority,
		alphabetLen:     d.alphabetLen,
		classes:         d.classes,
		startClass:      d.startClass,
		endClass:        d.endClass,
		startAnchored:   remap[group[d.startAnchored]],
		startUnanchored: remap[group[d.startUnanchored]],
		numStates:       numStates,
	}
}

// reachable marks every state discoverable from either start state.
func reachable(d *DFA) []bool {
	reach := make([]bool, d.numStates)
	stack := []StateID{d.startAnchored, d.startUnanchored}
	reach[DeadState] = true
	for _, s := range stack {
		reach[s] = true
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := 0; c < d.alphabetLen; c++ {
			n := d.Next(s, c)
			if !reach[n] {
				reach[n] = true
				stack = append(stack, n)
			}
		}
	}
	return reach
}

func appendInt(buf []byte, v int) []byte {
	u := uint32(v)
	return append(buf, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}
