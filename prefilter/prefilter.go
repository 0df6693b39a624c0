// Package prefilter accelerates unanchored searches by locating
// candidate match starts with literal scanning before the automaton is
// consulted.
//
// A prefilter is only built when a complete set of required prefixes
// can be read off the pattern's syntax tree: every match must begin
// with one of the extracted literals. Patterns with optional or
// unbounded prefixes get no prefilter and fall back to the plain
// automaton scan, which is always correct, just slower.
package prefilter

import (
	"bytes"
	"regexp/syntax"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// Limits keeping the extracted prefix set small enough that scanning it
// stays cheaper than the automaton it replaces.
const (
	maxPrefixes  = 64
	maxClassSize = 8
)

// Scanner locates candidate match starts in a haystack.
// A single prefix is scanned with bytes.Index; several prefixes share
// an Aho-Corasick automaton.
type Scanner struct {
	single []byte
	auto   *ahocorasick.Automaton
}

// FromRegexp extracts required literal prefixes from a parsed pattern
// and builds a Scanner over them. It returns nil when no complete
// prefix set exists; the caller must then scan without a prefilter.
func FromRegexp(re *syntax.Regexp) *Scanner {
	lits := prefixes(re)
	if len(lits) == 0 {
		return nil
	}
	if len(lits) == 1 {
		if len(lits[0]) == 0 {
			return nil
		}
		return &Scanner{single: lits[0]}
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		if len(lit) == 0 {
			return nil
		}
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Scanner{auto: auto}
}

// Next returns the offset of the earliest candidate match start at or
// after `at`. A false result means no match can begin anywhere in the
// remainder of the haystack.
func (s *Scanner) Next(haystack []byte, at int) (int, bool) {
	if at < 0 || at > len(haystack) {
		return 0, false
	}
	if s.single != nil {
		i := bytes.Index(haystack[at:], s.single)
		if i < 0 {
			return 0, false
		}
		return at + i, true
	}
	m := s.auto.Find(haystack, at)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}

// prefixes returns the complete set of literals one of which every
// match must begin with, or nil when no such set can be determined.
func prefixes(re *syntax.Regexp) [][]byte {
	if re.Flags&syntax.FoldCase != 0 {
		return nil
	}
	switch re.Op {
	case syntax.OpLiteral:
		return [][]byte{runesToBytes(re.Rune)}
	case syntax.OpCharClass:
		return classPrefixes(re)
	case syntax.OpCapture:
		if len(re.Sub) == 1 {
			return prefixes(re.Sub[0])
		}
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			switch sub.Op {
			case syntax.OpBeginText, syntax.OpBeginLine, syntax.OpEmptyMatch:
				// Zero-width at the front; the prefix lives further in.
				continue
			}
			return prefixes(sub)
		}
	case syntax.OpAlternate:
		var out [][]byte
		for _, sub := range re.Sub {
			ps := prefixes(sub)
			if ps == nil {
				return nil
			}
			out = append(out, ps...)
			if len(out) > maxPrefixes {
				return nil
			}
		}
		return out
	case syntax.OpPlus:
		if len(re.Sub) == 1 {
			return prefixes(re.Sub[0])
		}
	case syntax.OpRepeat:
		if re.Min >= 1 && len(re.Sub) == 1 {
			return prefixes(re.Sub[0])
		}
	}
	return nil
}

// classPrefixes expands a small character class into one single-rune
// literal per member. Classes with many members or non-literal width
// are not worth prefiltering.
func classPrefixes(re *syntax.Regexp) [][]byte {
	var out [][]byte
	for i := 0; i < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		if hi-lo >= maxClassSize || len(out)+int(hi-lo) >= maxClassSize {
			return nil
		}
		for r := lo; r <= hi; r++ {
			buf := make([]byte, utf8.UTFMax)
			n := utf8.EncodeRune(buf, r)
			out = append(out, buf[:n])
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func runesToBytes(rs []rune) []byte {
	var buf []byte
	for _, r := range rs {
		var enc [utf8.UTFMax]byte
		n := utf8.EncodeRune(enc[:], r)
		buf = append(buf, enc[:n]...)
	}
	return buf
}
