package nfa

import (
	"errors"
	"regexp/syntax"
	"testing"
)

// TestCompileBasicPatterns ensures representative patterns compile
func TestCompileBasicPatterns(t *testing.T) {
	patterns := []string{
		"abc",
		"a|b|c",
		"a*",
		"a+?",
		"[a-z0-9]+",
		"(foo|bar)baz",
		"a{2,5}",
		"^start.*end$",
		"",
		"世界",
		`\pL+`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := NewDefaultCompiler().Compile(pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", pattern, err)
			}
			if n.States() == 0 {
				t.Error("compiled NFA has no states")
			}
		})
	}
}

// TestCompileStartStates: unanchored patterns get a distinct scan-start
// state, anchored ones share it with the anchored start.
func TestCompileStartStates(t *testing.T) {
	tests := []struct {
		pattern    string
		sameStarts bool
	}{
		{"abc", false},
		{"^abc", true},
		{"^a|^b", true},
		{"^a|b", false},
		{"(^grouped)", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := NewDefaultCompiler().Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			same := n.StartAnchored() == n.StartUnanchored()
			if same != tt.sameStarts {
				t.Errorf("start states equal = %v, want %v", same, tt.sameStarts)
			}
		})
	}
}

// TestCompileUnsupported rejects non-regular constructs
func TestCompileUnsupported(t *testing.T) {
	for _, pattern := range []string{`\bword\b`, `a\B`} {
		t.Run(pattern, func(t *testing.T) {
			_, err := NewDefaultCompiler().Compile(pattern)
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("Compile(%q) error = %v, want ErrUnsupported", pattern, err)
			}
		})
	}
}

// TestCompileRepeatLimit rejects oversized counted repetition
func TestCompileRepeatLimit(t *testing.T) {
	c := NewCompiler(CompilerConfig{MaxRepeatCount: 10})
	_, err := c.Compile("a{1,50}")
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("error = %v, want ErrTooComplex", err)
	}
	if _, err := NewCompiler(CompilerConfig{MaxRepeatCount: 100}).Compile("a{1,50}"); err != nil {
		t.Errorf("repeat within the cap failed: %v", err)
	}
}

// TestCompileRecursionLimit rejects deeply nested patterns
func TestCompileRecursionLimit(t *testing.T) {
	pattern := ""
	for i := 0; i < 30; i++ {
		pattern += "(a"
	}
	for i := 0; i < 30; i++ {
		pattern += ")"
	}
	c := NewCompiler(CompilerConfig{MaxRecursionDepth: 10})
	_, err := c.Compile(pattern)
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("error = %v, want ErrTooComplex", err)
	}
}

// TestCompileParseError wraps syntax errors in CompileError
func TestCompileParseError(t *testing.T) {
	_, err := NewDefaultCompiler().Compile("a(b")
	if err == nil {
		t.Fatal("Compile(\"a(b\") succeeded, want parse error")
	}
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Errorf("error type = %T, want *CompileError", err)
	}
}

// TestCompileClassAlphabet: a compiled class contributes its boundaries
// to the byte class partition.
func TestCompileClassAlphabet(t *testing.T) {
	n, err := NewDefaultCompiler().Compile("[a-z]")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	bc := n.ByteClasses()
	if bc.Get('a') != bc.Get('z') {
		t.Errorf("Get('a') = %d, Get('z') = %d, want equal", bc.Get('a'), bc.Get('z'))
	}
	if bc.Get('a') == bc.Get('A') {
		t.Error("'a' and 'A' share a class; boundary lost")
	}
}

// TestReverseRegexp checks syntax-tree reversal
func TestReverseRegexp(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"abc", "cba"},
		// Reversed anchors render in \A \z form; $ parsed with WasDollar
		// renders as (?-m:$), so the want is written the way the reversed
		// tree prints.
		{"^abc$", `\Acba\z`},
		{`\Aabc\z`, `\Acba\z`},
		{"ab|cd", "ba|dc"},
		{"a(bc)*d", "d(cb)*a"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := syntax.Parse(tt.pattern, syntax.Perl)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			want, err := syntax.Parse(tt.want, syntax.Perl)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			got := reverseRegexp(re)
			if got.String() != want.String() {
				t.Errorf("reverseRegexp(%q) = %q, want %q", tt.pattern, got.String(), want.String())
			}
		})
	}
}

// TestCompileReverseBytes: the reverse NFA of a multi-byte literal must
// start on the rune's final UTF-8 byte.
func TestCompileReverseBytes(t *testing.T) {
	re, err := syntax.Parse("é", syntax.Perl)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	n, err := NewDefaultCompiler().CompileReverse(re)
	if err != nil {
		t.Fatalf("CompileReverse error: %v", err)
	}
	// U+00E9 encodes as C3 A9; backward execution consumes A9 first.
	s := n.State(n.StartAnchored())
	if s.Kind() != StateByteRange {
		t.Fatalf("start kind = %v, want ByteRange", s.Kind())
	}
	lo, hi, _ := s.ByteRange()
	if lo != 0xA9 || hi != 0xA9 {
		t.Errorf("first byte range = [%02X, %02X], want [A9, A9]", lo, hi)
	}
}
