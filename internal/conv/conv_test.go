package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(0); got != 0 {
		t.Errorf("IntToUint32(0) = %d", got)
	}
	if got := IntToUint32(42); got != 42 {
		t.Errorf("IntToUint32(42) = %d", got)
	}
}

func TestIntToUint32Negative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntToUint32(-1) did not panic")
		}
	}()
	IntToUint32(-1)
}

func TestIntToInt32(t *testing.T) {
	if got := IntToInt32(-5); got != -5 {
		t.Errorf("IntToInt32(-5) = %d", got)
	}
	if got := IntToInt32(1 << 20); got != 1<<20 {
		t.Errorf("IntToInt32(1<<20) = %d", got)
	}
}

func TestIntToInt32Overflow(t *testing.T) {
	if ^uint(0) == uint(math.MaxUint32) {
		t.Skip("int is 32 bits; overflow not representable")
	}
	defer func() {
		if recover() == nil {
			t.Error("out-of-range conversion did not panic")
		}
	}()
	IntToInt32(int(math.MaxInt32) + 1)
}
