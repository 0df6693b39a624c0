package nfa

import (
	"fmt"
	"unicode"
)

// CodePointRange is an inclusive interval of Unicode scalar values.
// Ranges within a character class are disjoint and ordered; that invariant
// is maintained by the regexp/syntax parser and validated here.
type CodePointRange struct {
	Lo, Hi rune
}

// Valid reports whether the range has ordered bounds within Unicode space.
func (r CodePointRange) Valid() bool {
	return r.Lo <= r.Hi && r.Lo >= 0 && r.Hi <= unicode.MaxRune
}

// Utf8Range is an inclusive range of byte values at a single position of
// an encoded sequence.
type Utf8Range struct {
	Lo, Hi byte
}

// Contains reports whether b falls inside the range.
func (r Utf8Range) Contains(b byte) bool {
	return r.Lo <= b && b <= r.Hi
}

// Utf8Sequence is a sequence of 1-4 byte ranges that together match the
// UTF-8 encodings of a contiguous code point range. A byte string matches
// the sequence iff it has exactly len(seq) bytes and the i-th byte falls
// in the i-th range.
type Utf8Sequence []Utf8Range

// String returns a human-readable representation like [C2-DF][80-BF].
func (s Utf8Sequence) String() string {
	out := ""
	for _, r := range s {
		if r.Lo == r.Hi {
			out += fmt.Sprintf("[%02X]", r.Lo)
		} else {
			out += fmt.Sprintf("[%02X-%02X]", r.Lo, r.Hi)
		}
	}
	return out
}

// Utf8Sequences decomposes the inclusive code point range [lo, hi] into
// the minimal list of byte sequence ranges covering its UTF-8 encodings.
//
// A single code point range usually needs several sequences because UTF-8
// encoding length varies with code point magnitude: [0x0, 0x10FFFF] splits
// into one sequence per encoding length, and ranges that straddle a
// leading-byte boundary split further so that every continuation range is
// a contiguous [lo, hi] interval. The surrogate gap U+D800-U+DFFF, which
// has no UTF-8 encoding, is excised.
//
// Returns ErrInvalidRange for inverted or out-of-range bounds; that
// indicates a contract violation by the syntax tree producer.
func Utf8Sequences(lo, hi rune) ([]Utf8Sequence, error) {
	if lo > hi || lo < 0 || hi > unicode.MaxRune {
		return nil, fmt.Errorf("%w: [0x%X, 0x%X]", ErrInvalidRange, lo, hi)
	}
	var seqs []Utf8Sequence
	appendSequences(lo, hi, &seqs)
	return seqs, nil
}

// maxScalars holds the largest code point encodable in 1, 2 and 3 bytes.
var maxScalars = [...]rune{0x7F, 0x7FF, 0xFFFF}

// appendSequences recursively splits [lo, hi] until both endpoints encode
// with the same length and every trailing byte position spans a contiguous
// interval, then emits one sequence for the aligned range.
func appendSequences(lo, hi rune, seqs *[]Utf8Sequence) {
	if lo > hi {
		return
	}

	// Excise the surrogate gap: those code points are not encodable.
	if lo < surrogateMax+1 && hi > surrogateMin-1 {
		appendSequences(lo, surrogateMin-1, seqs)
		appendSequences(surrogateMax+1, hi, seqs)
		return
	}

	// Split on encoding-length boundaries.
	for _, maxScalar := range maxScalars {
		if lo <= maxScalar && maxScalar < hi {
			appendSequences(lo, maxScalar, seqs)
			appendSequences(maxScalar+1, hi, seqs)
			return
		}
	}

	// One-byte encodings project directly onto a single byte range.
	if hi <= 0x7F {
		*seqs = append(*seqs, Utf8Sequence{{Lo: byte(lo), Hi: byte(hi)}})
		return
	}

	// Both endpoints now encode with the same multi-byte length. Split so
	// that whenever the leading bytes differ, the trailing bytes span the
	// full continuation range [80, BF].
	for i := 1; i < 4; i++ {
		m := rune(1)<<(6*uint(i)) - 1
		if (lo &^ m) != (hi &^ m) {
			if (lo & m) != 0 {
				appendSequences(lo, lo|m, seqs)
				appendSequences((lo|m)+1, hi, seqs)
				return
			}
			if (hi & m) != m {
				appendSequences(lo, (hi&^m)-1, seqs)
				appendSequences(hi&^m, hi, seqs)
				return
			}
		}
	}

	// Aligned: zip the encoded endpoints into per-position byte ranges.
	var lbuf, hbuf [4]byte
	n := encodeRune(lbuf[:], lo)
	encodeRune(hbuf[:], hi)
	seq := make(Utf8Sequence, n)
	for i := 0; i < n; i++ {
		seq[i] = Utf8Range{Lo: lbuf[i], Hi: hbuf[i]}
	}
	*seqs = append(*seqs, seq)
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// encodeRune encodes a rune as UTF-8 into buf and returns the number of
// bytes written. buf must have capacity >= 4. The caller guarantees r is a
// valid scalar value outside the surrogate gap.
func encodeRune(buf []byte, r rune) int {
	if r < 0x80 {
		buf[0] = byte(r)
		return 1
	}
	if r < 0x800 {
		buf[0] = byte(0xC0 | (r >> 6))
		buf[1] = byte(0x80 | (r & 0x3F))
		return 2
	}
	if r < 0x10000 {
		buf[0] = byte(0xE0 | (r >> 12))
		buf[1] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[2] = byte(0x80 | (r & 0x3F))
		return 3
	}
	buf[0] = byte(0xF0 | (r >> 18))
	buf[1] = byte(0x80 | ((r >> 12) & 0x3F))
	buf[2] = byte(0x80 | ((r >> 6) & 0x3F))
	buf[3] = byte(0x80 | (r & 0x3F))
	return 4
}
