package nfa

import (
	"regexp/syntax"
)

// CompileReverse compiles the NFA that matches the byte-reversal of the
// language of re.
//
// Running this automaton backward from a known match end recovers the
// match start: subset construction on the forward automaton merges the
// information about where each live thread began, so a second automaton
// over the reversed language is the only way to get it back.
//
// The reversal happens on the syntax tree rather than the state graph:
// concatenations flip their child order, literals flip their rune order,
// and anchors swap start for end. Tree reversal sidesteps the multiple
// dangling-edge bookkeeping a graph reversal needs, and the regular
// compiler then guarantees the reverse automaton has exactly the same
// shape invariants as the forward one.
func (c *Compiler) CompileReverse(re *syntax.Regexp) (*NFA, error) {
	cfg := c.config
	cfg.Reversed = true
	return NewCompiler(cfg).CompileRegexp(reverseRegexp(re))
}

// reverseRegexp returns a deep copy of re matching reversed inputs.
// The input tree is never mutated; it belongs to the caller.
func reverseRegexp(re *syntax.Regexp) *syntax.Regexp {
	out := new(syntax.Regexp)
	*out = *re
	if re.Rune != nil {
		out.Rune = append([]rune(nil), re.Rune...)
	}

	switch re.Op {
	case syntax.OpLiteral:
		for i, j := 0, len(out.Rune)-1; i < j; i, j = i+1, j-1 {
			out.Rune[i], out.Rune[j] = out.Rune[j], out.Rune[i]
		}

	case syntax.OpConcat:
		out.Sub = make([]*syntax.Regexp, len(re.Sub))
		for i, sub := range re.Sub {
			out.Sub[len(re.Sub)-1-i] = reverseRegexp(sub)
		}

	case syntax.OpBeginText:
		out.Op = syntax.OpEndText
	case syntax.OpBeginLine:
		out.Op = syntax.OpEndLine
	case syntax.OpEndText:
		out.Op = syntax.OpBeginText
	case syntax.OpEndLine:
		out.Op = syntax.OpBeginLine

	default:
		if len(re.Sub) > 0 {
			out.Sub = make([]*syntax.Regexp, len(re.Sub))
			for i, sub := range re.Sub {
				out.Sub[i] = reverseRegexp(sub)
			}
		}
	}
	return out
}
