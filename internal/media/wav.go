package media

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// WriteWAV writes mono float32 samples as a 16-bit PCM WAV file at the given
// sample rate. Models that consume audio over file-based APIs need their
// input in a container; a plain RIFF header is all that takes.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	defer file.Close()

	dataSize := len(samples) * 2
	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(header[32:34], 2)
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := file.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	pcm := make([]byte, dataSize)
	for i, sample := range samples {
		clamped := sample
		if clamped > 1 {
			clamped = 1
		} else if clamped < -1 {
			clamped = -1
		}
		value := int16(clamped * math.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(value))
	}

	if _, err := file.Write(pcm); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	return nil
}
