package nfa

import (
	"fmt"
	"regexp/syntax"
	"sort"
	"unicode"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRepeatCount caps counted repetition expansion {m,n}.
	// Larger bounds fail with ErrTooComplex. Default: 1000.
	MaxRepeatCount int

	// MaxRecursionDepth limits recursion during compilation to prevent
	// stack overflow on deeply nested patterns. Default: 250.
	MaxRecursionDepth int

	// Reversed emits the UTF-8 byte chain of every rune and class
	// sequence back to front, for automata that consume input backward.
	// Tree-level reversal (concatenation order, anchors) is handled by
	// CompileReverse; this flag covers the byte level beneath it.
	Reversed bool
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRepeatCount:    1000,
		MaxRecursionDepth: 250,
	}
}

// Compiler compiles regexp/syntax.Regexp trees into Thompson NFAs.
//
// Quantifier preference is encoded purely as split edge order at
// construction time: greedy quantifiers order the "continue looping" edge
// before the "exit" edge, lazy quantifiers reverse that. No component
// downstream of the builder needs any notion of greediness.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRepeatCount == 0 {
		config.MaxRepeatCount = 1000
	}
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 250
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses a pattern with regexp/syntax and compiles it into an NFA.
// This is a convenience wrapper; the core entry point is CompileRegexp,
// which consumes an already-parsed tree.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return c.CompileRegexp(re)
}

// CompileRegexp compiles a parsed syntax.Regexp into an NFA.
//
// Unsupported constructs are detected on the tree before any state is
// emitted, so a failed compilation never leaves a partially built
// automaton behind.
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	if err := checkSupported(re); err != nil {
		return nil, err
	}

	c.builder = NewBuilderWithCapacity(64)
	c.depth = 0

	start, end, err := c.compile(re)
	if err != nil {
		return nil, err
	}

	match := c.builder.AddMatch(0)
	if err := c.builder.Patch(end, match); err != nil {
		return nil, &CompileError{Err: err}
	}

	// Unanchored start: a lazy (?s:.)*? self-loop in front of the pattern,
	// preferring to enter the pattern over consuming another byte. For
	// ^-anchored patterns the prefix is pointless (the assertion kills
	// every non-zero offset), so both starts coincide.
	unanchored := start
	if !startsAnchored(re) {
		loopBack := c.builder.AddEpsilon(InvalidState)
		anyByte := c.builder.AddByteRange(0x00, 0xFF, loopBack)
		split := c.builder.AddSplit(start, anyByte)
		if err := c.builder.Patch(loopBack, split); err != nil {
			return nil, &CompileError{Err: err}
		}
		unanchored = split
	}

	c.builder.SetStarts(start, unanchored)
	n, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return n, nil
}

// checkSupported walks the tree rejecting constructs whose semantics are
// not regular at the byte level. Word boundaries interact with
// mid-codepoint positions and are rejected rather than approximated.
func checkSupported(re *syntax.Regexp) error {
	switch re.Op {
	case syntax.OpWordBoundary:
		return &CompileError{Op: `\b`, Err: ErrUnsupported}
	case syntax.OpNoWordBoundary:
		return &CompileError{Op: `\B`, Err: ErrUnsupported}
	}
	for _, sub := range re.Sub {
		if err := checkSupported(sub); err != nil {
			return err
		}
	}
	return nil
}

// startsAnchored reports whether every match of re must begin at the
// start of text.
func startsAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText, syntax.OpBeginLine:
		return true
	case syntax.OpConcat:
		if len(re.Sub) > 0 {
			return startsAnchored(re.Sub[0])
		}
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return startsAnchored(re.Sub[0])
		}
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if !startsAnchored(sub) {
				return false
			}
		}
		return len(re.Sub) > 0
	}
	return false
}

// compile recursively compiles a syntax.Regexp node.
// Returns (start, end) state IDs for the compiled fragment; end is always
// a patchable state awaiting its successor.
func (c *Compiler) compile(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{Op: re.Op.String(), Err: ErrTooComplex}
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.compileClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileClass([]rune{0, unicode.MaxRune})
	case syntax.OpAnyCharNotNL:
		return c.compileClass([]rune{0, '\n' - 1, '\n' + 1, unicode.MaxRune})
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0], re.Flags&syntax.NonGreedy == 0)
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], re.Flags&syntax.NonGreedy == 0)
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0], re.Flags&syntax.NonGreedy == 0)
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max, re.Flags&syntax.NonGreedy == 0)
	case syntax.OpCapture:
		// Group boundaries carry no automaton semantics here.
		return c.compile(re.Sub[0])
	case syntax.OpBeginText, syntax.OpBeginLine:
		id := c.builder.AddLook(LookStartText, InvalidState)
		return id, id, nil
	case syntax.OpEndText, syntax.OpEndLine:
		id := c.builder.AddLook(LookEndText, InvalidState)
		return id, id, nil
	case syntax.OpEmptyMatch:
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	case syntax.OpNoMatch:
		return c.compileFail()
	default:
		return InvalidState, InvalidState, &CompileError{Op: re.Op.String(), Err: ErrUnsupported}
	}
}

// compileFail emits a fragment that can never match. The returned end is a
// disconnected epsilon so the caller's splice still has a patch point.
func (c *Compiler) compileFail() (start, end StateID, err error) {
	fail := c.builder.AddFail()
	eps := c.builder.AddEpsilon(InvalidState)
	return fail, eps, nil
}

// compileLiteral compiles a literal rune sequence into a byte chain.
// Case-insensitive literals compile each rune as its fold orbit.
func (c *Compiler) compileLiteral(runes []rune, foldCase bool) (start, end StateID, err error) {
	if len(runes) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	first := InvalidState
	prev := InvalidState
	for _, r := range runes {
		var s, e StateID
		var cerr error
		if foldCase {
			s, e, cerr = c.compileClass(foldOrbit(r))
		} else {
			s, e, cerr = c.compileRuneBytes(r)
		}
		if cerr != nil {
			return InvalidState, InvalidState, cerr
		}
		if first == InvalidState {
			first = s
		}
		if prev != InvalidState {
			if perr := c.builder.Patch(prev, s); perr != nil {
				return InvalidState, InvalidState, &CompileError{Err: perr}
			}
		}
		prev = e
	}
	return first, prev, nil
}

// compileRuneBytes compiles a single rune as its UTF-8 byte chain, back
// to front when the compiler targets backward execution.
func (c *Compiler) compileRuneBytes(r rune) (start, end StateID, err error) {
	var buf [4]byte
	n := encodeRune(buf[:], r)
	if c.config.Reversed {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	first := InvalidState
	prev := InvalidState
	for i := 0; i < n; i++ {
		id := c.builder.AddByteRange(buf[i], buf[i], InvalidState)
		if first == InvalidState {
			first = id
		}
		if prev != InvalidState {
			if perr := c.builder.Patch(prev, id); perr != nil {
				return InvalidState, InvalidState, &CompileError{Err: perr}
			}
		}
		prev = id
	}
	return first, prev, nil
}

// compileClass compiles a character class given as rune range pairs
// [lo1, hi1, lo2, hi2, ...], the regexp/syntax representation.
//
// Each code point range is projected onto its UTF-8 byte sequence ranges:
// one-byte sequences are collected into a single sparse state, multi-byte
// sequences become byte chains, and all paths converge on a shared join
// state. The projection never assumes a single byte range suffices.
func (c *Compiler) compileClass(ranges []rune) (start, end StateID, err error) {
	if len(ranges) == 0 {
		return c.compileFail()
	}
	if len(ranges)%2 != 0 {
		return InvalidState, InvalidState, &CompileError{
			Op:  "CharClass",
			Err: fmt.Errorf("%w: odd range list length %d", ErrInvalidRange, len(ranges)),
		}
	}

	join := c.builder.AddEpsilon(InvalidState)
	var heads []StateID
	var ascii []Transition

	for i := 0; i < len(ranges); i += 2 {
		cp := CodePointRange{Lo: ranges[i], Hi: ranges[i+1]}
		if !cp.Valid() {
			return InvalidState, InvalidState, &CompileError{
				Op:  "CharClass",
				Err: fmt.Errorf("%w: [0x%X, 0x%X]", ErrInvalidRange, cp.Lo, cp.Hi),
			}
		}
		seqs, serr := Utf8Sequences(cp.Lo, cp.Hi)
		if serr != nil {
			return InvalidState, InvalidState, &CompileError{Op: "CharClass", Err: serr}
		}
		for _, seq := range seqs {
			if len(seq) == 1 {
				ascii = append(ascii, Transition{Lo: seq[0].Lo, Hi: seq[0].Hi, Next: join})
				continue
			}
			if c.config.Reversed {
				seq = append(Utf8Sequence(nil), seq...)
				for a, b := 0, len(seq)-1; a < b; a, b = a+1, b-1 {
					seq[a], seq[b] = seq[b], seq[a]
				}
			}
			// Chain built back to front so every link knows its successor.
			next := join
			for j := len(seq) - 1; j >= 1; j-- {
				next = c.builder.AddByteRange(seq[j].Lo, seq[j].Hi, next)
			}
			heads = append(heads, c.builder.AddByteRange(seq[0].Lo, seq[0].Hi, next))
		}
	}

	switch len(ascii) {
	case 0:
	case 1:
		heads = append(heads, c.builder.AddByteRange(ascii[0].Lo, ascii[0].Hi, join))
	default:
		heads = append(heads, c.builder.AddSparse(ascii))
	}

	if len(heads) == 0 {
		// Nothing matchable; keep join wired so the automaton stays closed.
		fail := c.builder.AddFail()
		if perr := c.builder.Patch(join, fail); perr != nil {
			return InvalidState, InvalidState, &CompileError{Err: perr}
		}
		return c.compileFail()
	}
	return c.buildSplitChain(heads), join, nil
}

// buildSplitChain builds a right-leaning chain of split states preserving
// left-to-right priority order over the targets.
func (c *Compiler) buildSplitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	right := c.buildSplitChain(targets[1:])
	return c.builder.AddSplit(targets[0], right)
}

// compileConcat compiles concatenation by splicing each fragment's end to
// the next fragment's start.
func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	start, end, err = c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		nextStart, nextEnd, cerr := c.compile(sub)
		if cerr != nil {
			return InvalidState, InvalidState, cerr
		}
		if perr := c.builder.Patch(end, nextStart); perr != nil {
			return InvalidState, InvalidState, &CompileError{Err: perr}
		}
		end = nextEnd
	}
	return start, end, nil
}

// compileAlternate compiles alternation with a split chain in left-to-right
// priority order and a shared join state.
func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileFail()
	}
	if len(subs) == 1 {
		return c.compile(subs[0])
	}

	join := c.builder.AddEpsilon(InvalidState)
	starts := make([]StateID, 0, len(subs))
	for _, sub := range subs {
		s, e, cerr := c.compile(sub)
		if cerr != nil {
			return InvalidState, InvalidState, cerr
		}
		if perr := c.builder.Patch(e, join); perr != nil {
			return InvalidState, InvalidState, &CompileError{Err: perr}
		}
		starts = append(starts, s)
	}
	return c.buildSplitChain(starts), join, nil
}

// compileStar compiles sub* with an explicit loop-back split state.
// greedy orders the loop edge first; lazy orders the exit edge first.
func (c *Compiler) compileStar(sub *syntax.Regexp, greedy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	exit := c.builder.AddEpsilon(InvalidState)
	var split StateID
	if greedy {
		split = c.builder.AddSplit(subStart, exit)
	} else {
		split = c.builder.AddSplit(exit, subStart)
	}
	if perr := c.builder.Patch(subEnd, split); perr != nil {
		return InvalidState, InvalidState, &CompileError{Err: perr}
	}
	return split, exit, nil
}

// compilePlus compiles sub+ as one mandatory pass followed by the loop split.
func (c *Compiler) compilePlus(sub *syntax.Regexp, greedy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	exit := c.builder.AddEpsilon(InvalidState)
	var split StateID
	if greedy {
		split = c.builder.AddSplit(subStart, exit)
	} else {
		split = c.builder.AddSplit(exit, subStart)
	}
	if perr := c.builder.Patch(subEnd, split); perr != nil {
		return InvalidState, InvalidState, &CompileError{Err: perr}
	}
	return subStart, exit, nil
}

// compileQuest compiles sub? with a single preference split.
func (c *Compiler) compileQuest(sub *syntax.Regexp, greedy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	exit := c.builder.AddEpsilon(InvalidState)
	var split StateID
	if greedy {
		split = c.builder.AddSplit(subStart, exit)
	} else {
		split = c.builder.AddSplit(exit, subStart)
	}
	if perr := c.builder.Patch(subEnd, exit); perr != nil {
		return InvalidState, InvalidState, &CompileError{Err: perr}
	}
	return split, exit, nil
}

// compileRepeat compiles sub{min,max} by expansion: min mandatory copies
// followed by optional copies (or a star for unbounded max). Expansion is
// capped by MaxRepeatCount to bound automaton size before determinization
// ever sees it.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int, greedy bool) (start, end StateID, err error) {
	if minCount < 0 || (maxCount != -1 && maxCount < minCount) {
		return InvalidState, InvalidState, &CompileError{
			Op:  "Repeat",
			Err: fmt.Errorf("%w: {%d,%d}", ErrInvalidRange, minCount, maxCount),
		}
	}
	if minCount > c.config.MaxRepeatCount || maxCount > c.config.MaxRepeatCount {
		return InvalidState, InvalidState, &CompileError{Op: "Repeat", Err: ErrTooComplex}
	}

	first := InvalidState
	prev := InvalidState
	link := func(s, e StateID) error {
		if first == InvalidState {
			first = s
		}
		if prev != InvalidState {
			if perr := c.builder.Patch(prev, s); perr != nil {
				return &CompileError{Err: perr}
			}
		}
		prev = e
		return nil
	}

	for i := 0; i < minCount; i++ {
		s, e, cerr := c.compile(sub)
		if cerr != nil {
			return InvalidState, InvalidState, cerr
		}
		if lerr := link(s, e); lerr != nil {
			return InvalidState, InvalidState, lerr
		}
	}

	if maxCount == -1 {
		s, e, cerr := c.compileStar(sub, greedy)
		if cerr != nil {
			return InvalidState, InvalidState, cerr
		}
		if lerr := link(s, e); lerr != nil {
			return InvalidState, InvalidState, lerr
		}
	} else {
		for i := 0; i < maxCount-minCount; i++ {
			s, e, cerr := c.compileQuest(sub, greedy)
			if cerr != nil {
				return InvalidState, InvalidState, cerr
			}
			if lerr := link(s, e); lerr != nil {
				return InvalidState, InvalidState, lerr
			}
		}
	}

	if first == InvalidState {
		// {0,0}: matches the empty string only.
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}
	return first, prev, nil
}

// foldOrbit returns the case fold orbit of r as rune range pairs,
// sorted and deduplicated.
func foldOrbit(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	sort.Slice(orbit, func(i, j int) bool { return orbit[i] < orbit[j] })

	var pairs []rune
	for _, o := range orbit {
		if n := len(pairs); n > 0 && pairs[n-1] == o {
			continue
		}
		pairs = append(pairs, o, o)
	}
	return pairs
}
