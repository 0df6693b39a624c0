package nfa

// ByteClasses maps each byte value to its equivalence class.
//
// ByteClasses is an alphabet reduction technique that groups bytes into
// equivalence classes based on how the pattern treats them. Instead of
// maintaining 256 transitions per DFA state, transitions are reduced to
// N classes (typically 4-64), dramatically reducing the table width.
//
// Two bytes belong to the same equivalence class if no byte-range edge
// anywhere in the NFA distinguishes them; every DFA built over this
// alphabet then behaves identically on them.
//
// Example for pattern [a-z]+:
//   - Class 0: bytes 0x00-0x60 (before 'a')
//   - Class 1: bytes 0x61-0x7a ('a' to 'z')
//   - Class 2: bytes 0x7b-0xff (after 'z')
//
// Beyond the byte classes, the compiled alphabet always carries two
// sentinel classes for the start-of-text and end-of-text virtual symbols
// consumed by Look states. They are present even for patterns with no
// anchors, so the table layout is uniform.
type ByteClasses struct {
	// classes maps each byte (0-255) to its equivalence class
	classes [256]byte
}

// Get returns the equivalence class for the given byte.
// This is an O(1) lookup.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of byte equivalence classes,
// excluding the two sentinel classes.
func (bc *ByteClasses) AlphabetLen() int {
	maxClass := byte(0)
	for _, c := range bc.classes {
		if c > maxClass {
			maxClass = c
		}
	}
	return int(maxClass) + 1
}

// TotalClasses returns the full alphabet width used by DFA transition
// tables: the byte classes plus the two sentinel classes.
func (bc *ByteClasses) TotalClasses() int {
	return bc.AlphabetLen() + 2
}

// StartTextClass returns the class id of the start-of-text virtual symbol.
func (bc *ByteClasses) StartTextClass() int {
	return bc.AlphabetLen()
}

// EndTextClass returns the class id of the end-of-text virtual symbol.
func (bc *ByteClasses) EndTextClass() int {
	return bc.AlphabetLen() + 1
}

// IsSingleton returns true if each byte is its own equivalence class,
// meaning no alphabet reduction was possible.
func (bc *ByteClasses) IsSingleton() bool {
	return bc.AlphabetLen() == 256
}

// Representatives returns a slice of representative bytes, one for each
// byte class, in class order. Each representative can be used to compute
// transitions for all bytes in that class.
func (bc *ByteClasses) Representatives() []byte {
	seen := make([]bool, 256)
	var reps []byte

	for b := 0; b < 256; b++ {
		class := bc.classes[b]
		if !seen[class] {
			seen[class] = true
			reps = append(reps, byte(b))
		}
	}

	return reps
}

// Elements returns all bytes that belong to the given equivalence class.
func (bc *ByteClasses) Elements(class byte) []byte {
	var elems []byte
	for b := 0; b < 256; b++ {
		if bc.classes[b] == class {
			elems = append(elems, byte(b))
		}
	}
	return elems
}

// ByteClassSet tracks byte boundaries during NFA construction.
//
// For each byte-range edge [lo, hi] added to the NFA, lo-1 and hi are
// marked as boundary bytes. Converting the boundary set to classes then
// yields the coarsest partition in which no referenced range boundary
// falls inside a class.
type ByteClassSet struct {
	// bits is a 256-bit bitset where bit i is set if byte i is a class boundary
	bits [4]uint64
}

// NewByteClassSet creates an empty ByteClassSet with no boundaries.
func NewByteClassSet() *ByteClassSet {
	return &ByteClassSet{}
}

// SetRange marks a byte range [start, end] as having distinct transitions.
// This sets boundary bits at start-1 and end.
func (bcs *ByteClassSet) SetRange(start, end byte) {
	if start > 0 {
		bcs.setBit(start - 1)
	}
	bcs.setBit(end)
}

// setBit sets the bit for byte b
func (bcs *ByteClassSet) setBit(b byte) {
	bcs.bits[b/64] |= 1 << (b % 64)
}

// getBit reports whether the bit for byte b is set
func (bcs *ByteClassSet) getBit(b byte) bool {
	return (bcs.bits[b/64] & (1 << (b % 64))) != 0
}

// ByteClasses converts the boundary set into a ByteClasses lookup table.
//
// Walks all 256 bytes, incrementing the class number after each boundary
// byte.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)

	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		if bcs.getBit(byte(b)) && b < 255 {
			class++
		}
	}

	return bc
}
