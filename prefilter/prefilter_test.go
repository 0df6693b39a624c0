package prefilter

import (
	"regexp/syntax"
	"testing"
)

func scanner(t *testing.T, pattern string) *Scanner {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	return FromRegexp(re)
}

// TestFromRegexpEligibility: a prefilter exists only when every match
// must begin with a known literal.
func TestFromRegexpEligibility(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"abc", true},
		{"abc|def", true},
		{"^abc", true},
		{"(foo|bar)baz", true},
		{"x+y", true},
		{"[ab]c", true},
		{"a*b", false},
		{".*x", false},
		{"a?b", false},
		{"[a-z]+", false},
		{"(?i)abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := scanner(t, tt.pattern) != nil
			if got != tt.want {
				t.Errorf("FromRegexp(%q) != nil = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

// TestNextSingleLiteral uses substring search for one prefix
func TestNextSingleLiteral(t *testing.T) {
	s := scanner(t, "needle")
	if s == nil {
		t.Fatal("no scanner built")
	}
	haystack := []byte("hay needle hay needle")
	at, ok := s.Next(haystack, 0)
	if !ok || at != 4 {
		t.Errorf("Next(0) = (%d, %v), want (4, true)", at, ok)
	}
	at, ok = s.Next(haystack, 5)
	if !ok || at != 15 {
		t.Errorf("Next(5) = (%d, %v), want (15, true)", at, ok)
	}
	if _, ok := s.Next(haystack, 16); ok {
		t.Error("Next past the last occurrence reported a candidate")
	}
}

// TestNextMultipleLiterals routes alternations through Aho-Corasick
func TestNextMultipleLiterals(t *testing.T) {
	s := scanner(t, "cat|dog|bird")
	if s == nil {
		t.Fatal("no scanner built")
	}
	haystack := []byte("a dog chased a cat")
	at, ok := s.Next(haystack, 0)
	if !ok || at != 2 {
		t.Errorf("Next(0) = (%d, %v), want (2, true)", at, ok)
	}
	at, ok = s.Next(haystack, 3)
	if !ok || at != 15 {
		t.Errorf("Next(3) = (%d, %v), want (15, true)", at, ok)
	}
}

// TestNextClassExpansion expands small leading classes
func TestNextClassExpansion(t *testing.T) {
	s := scanner(t, "[ab]z")
	if s == nil {
		t.Fatal("no scanner built for small class")
	}
	at, ok := s.Next([]byte("xxbz"), 0)
	if !ok || at != 2 {
		t.Errorf("Next = (%d, %v), want (2, true)", at, ok)
	}
}

// TestNextOutOfRange
func TestNextOutOfRange(t *testing.T) {
	s := scanner(t, "abc")
	if _, ok := s.Next([]byte("abc"), 4); ok {
		t.Error("Next past the end reported a candidate")
	}
	if _, ok := s.Next([]byte("abc"), -1); ok {
		t.Error("Next with negative offset reported a candidate")
	}
}
