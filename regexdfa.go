// Package regexdfa compiles regular expressions ahead of time into
// dense, minimal DFAs and matches with them.
//
// The pipeline parses a pattern with regexp/syntax, compiles it into a
// byte-level NFA (nfa package), determinizes and minimizes it into a
// dense transition table (dfa/dense package), and pairs the forward
// table with one compiled from the reversed pattern so match starts can
// be recovered. The compiled Regex is immutable and safe for concurrent
// use; only compilation pays the subset-construction cost, matching is
// a table walk.
//
// Non-regular features (backreferences, lookaround beyond ^ and $) are
// rejected at compile time rather than approximated.
package regexdfa

import (
	"fmt"
	"regexp/syntax"

	"github.com/mrityunjai01/regex-dfa/dfa/dense"
	"github.com/mrityunjai01/regex-dfa/nfa"
	"github.com/mrityunjai01/regex-dfa/prefilter"
)

// Config controls compilation and the default execution policy.
type Config struct {
	// MaxStates bounds the DFA state count during determinization.
	// Compilation fails with dense.ErrStateLimit when a pattern needs
	// more; it is the only guard against exponential subset blowup.
	MaxStates int

	// LongestMatch selects whether Find extends a discovered match to
	// the last accepting offset (greedy boundary extraction) or stops
	// at the earliest accepting offset.
	LongestMatch bool

	// Minimize runs Moore minimization on both compiled tables.
	Minimize bool
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		MaxStates:    10_000,
		LongestMatch: true,
		Minimize:     true,
	}
}

// Regex is a compiled pattern. It holds a forward and a reverse DFA
// plus an optional literal prefilter, all immutable, so a single Regex
// may be shared across any number of goroutines.
type Regex struct {
	pattern string
	fwd     *dense.DFA
	rev     *dense.DFA
	pre     *prefilter.Scanner
	config  Config
}

// Compile parses pattern with Perl syntax and compiles it with the
// default configuration.
func Compile(pattern string) (*Regex, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	r, err := CompileSyntax(re, DefaultConfig())
	if err != nil {
		return nil, err
	}
	r.pattern = pattern
	return r, nil
}

// MustCompile is Compile that panics on error, for package-level
// pattern variables.
func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("regexdfa: Compile(%q): %v", pattern, err))
	}
	return r
}

// CompileSyntax compiles an already parsed pattern. The syntax tree is
// not mutated and may be reused by the caller.
func CompileSyntax(re *syntax.Regexp, config Config) (*Regex, error) {
	if config.MaxStates == 0 {
		config.MaxStates = DefaultConfig().MaxStates
	}
	re = re.Simplify()

	fwdNFA, err := nfa.NewDefaultCompiler().CompileRegexp(re)
	if err != nil {
		return nil, fmt.Errorf("compile forward nfa: %w", err)
	}
	revNFA, err := nfa.NewDefaultCompiler().CompileReverse(re)
	if err != nil {
		return nil, fmt.Errorf("compile reverse nfa: %w", err)
	}

	denseConfig := dense.DefaultConfig().
		WithMaxStates(config.MaxStates).
		WithMinimize(config.Minimize)
	fwd, err := dense.Determinize(fwdNFA, denseConfig)
	if err != nil {
		return nil, fmt.Errorf("determinize forward: %w", err)
	}
	rev, err := dense.Determinize(revNFA, denseConfig)
	if err != nil {
		return nil, fmt.Errorf("determinize reverse: %w", err)
	}

	return &Regex{
		pattern: re.String(),
		fwd:     fwd,
		rev:     rev,
		pre:     prefilter.FromRegexp(re),
		config:  config,
	}, nil
}

// Pattern returns the source pattern.
func (r *Regex) Pattern() string {
	return r.pattern
}

// String returns the pattern and compiled table sizes for debugging.
func (r *Regex) String() string {
	return fmt.Sprintf("Regex{%q, fwd: %d states, rev: %d states}",
		r.pattern, r.fwd.NumStates(), r.rev.NumStates())
}

// ForwardStates returns the state count of the forward DFA.
func (r *Regex) ForwardStates() int {
	return r.fwd.NumStates()
}

// ReverseStates returns the state count of the reverse DFA.
func (r *Regex) ReverseStates() int {
	return r.rev.NumStates()
}

// IsMatch reports whether the pattern matches anywhere in b.
// It runs in shortest mode and stops at the first accepting state, so
// it never costs more than one forward scan.
func (r *Regex) IsMatch(b []byte) bool {
	_, ok := r.ShortestMatch(b, 0)
	return ok
}

// ShortestMatch scans forward from start and returns the earliest
// offset at which any match ends. The match may begin anywhere at or
// after start. A lazy pattern like `a+?` reports the same end here as
// its greedy twin's first accept, because shortest mode stops before
// greediness can extend anything.
func (r *Regex) ShortestMatch(b []byte, start int) (end int, ok bool) {
	at, ok := r.candidate(b, start)
	if !ok {
		return 0, false
	}
	return r.fwd.Shortest(b, at, false)
}

// Find returns the span of the leftmost match at or after start.
//
// It composes three table walks: a forward unanchored scan finds the
// earliest offset where any match ends; the reverse DFA walks backward
// from that end to the leftmost offset a match could have started; a
// final anchored forward walk from that start extends the end under the
// configured policy. The reverse walk is what subset construction makes
// necessary: the forward DFA knows a match ended but not where the
// thread that matched began.
func (r *Regex) Find(b []byte, start int) (s, e int, ok bool) {
	at, ok := r.candidate(b, start)
	if !ok {
		return 0, 0, false
	}
	end, ok := r.fwd.Shortest(b, at, false)
	if !ok {
		return 0, 0, false
	}
	s, ok = r.rev.ReverseLeftmost(b, start, end)
	if !ok {
		return 0, 0, false
	}
	if !r.config.LongestMatch {
		return s, end, true
	}
	e, ok = r.fwd.Longest(b, s)
	if !ok {
		return 0, 0, false
	}
	return s, e, true
}

// candidate returns the first offset at or after start where a match
// could begin, using the literal prefilter when one was built.
func (r *Regex) candidate(b []byte, start int) (int, bool) {
	if start < 0 || start > len(b) {
		return 0, false
	}
	if r.pre == nil {
		return start, true
	}
	return r.pre.Next(b, start)
}
