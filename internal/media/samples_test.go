package media

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSamplesFromF32LE(t *testing.T) {
	want := []float32{0, 0.5, -1, 0.25}
	raw := make([]byte, len(want)*4)
	for i, v := range want {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	got := SamplesFromF32LE(raw)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSamplesFromF32LEDropsTrailingBytes(t *testing.T) {
	raw := make([]byte, 10) // two whole samples plus two stray bytes

	if got := SamplesFromF32LE(raw); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestSamplesFromF32LEEmptyInput(t *testing.T) {
	if got := SamplesFromF32LE(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
