package media

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := []float32{0, 0.5, -0.5, 1, -1}

	if err := WriteWAV(path, samples, 16000); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	wantSize := 44 + len(samples)*2
	if len(data) != wantSize {
		t.Fatalf("file size = %d, want %d", len(data), wantSize)
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 16000 {
		t.Errorf("sample rate = %d, want 16000", got)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("channels = %d, want mono", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", got, len(samples)*2)
	}

	// Silence encodes as zero; full scale clamps to the int16 limits.
	if got := int16(binary.LittleEndian.Uint16(data[44:46])); got != 0 {
		t.Errorf("first sample = %d, want 0", got)
	}
	if got := int16(binary.LittleEndian.Uint16(data[50:52])); got != 32767 {
		t.Errorf("full-scale sample = %d, want 32767", got)
	}
}

func TestWriteWAVClampsOutOfRangeSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clamp.wav")

	if err := WriteWAV(path, []float32{2.0, -2.0}, 16000); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(data[44:46])); got != 32767 {
		t.Errorf("over-range sample = %d, want clamped 32767", got)
	}
	if got := int16(binary.LittleEndian.Uint16(data[46:48])); got != -32767 {
		t.Errorf("under-range sample = %d, want clamped -32767", got)
	}
}
