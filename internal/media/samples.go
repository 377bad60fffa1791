package media

import (
	"encoding/binary"
	"math"
)

// SamplesFromF32LE decodes raw little-endian float32 bytes into samples.
// Trailing bytes that do not form a whole sample are dropped.
func SamplesFromF32LE(raw []byte) []float32 {
	samples := make([]float32, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples
}
