package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// Transcoder wraps the external ffmpeg tool for media decoding and format
// conversion. Every failure is recoverable: callers report an error status
// and keep the session intact.
type Transcoder struct {
	binary string
	log    *zap.Logger
}

// NewTranscoder creates a Transcoder using the given ffmpeg binary name or
// path ("ffmpeg" when empty).
func NewTranscoder(binary string, logger *zap.Logger) *Transcoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcoder{
		binary: binary,
		log:    logger.With(zap.String("component", "media")),
	}
}

// ExtractAudioTrack pulls the audio track out of a video file into a
// temporary mono 16 kHz WAV file and returns its path. The caller owns the
// returned file and must delete it after use.
func (t *Transcoder) ExtractAudioTrack(ctx context.Context, videoPath string) (string, error) {
	tmp, err := os.CreateTemp("", "vaani_audio_*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	audioPath := tmp.Name()
	tmp.Close()

	cmd := exec.CommandContext(ctx, t.binary,
		"-i", videoPath,
		"-ac", "1",
		"-ar", "16000",
		"-loglevel", "quiet",
		"-y", audioPath,
	)
	if err := cmd.Run(); err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("extract audio track: %w", err)
	}

	t.log.Info("audio track extracted", zap.String("video", videoPath), zap.String("audio", audioPath))
	return audioPath, nil
}

// ConvertAudioFormat re-encodes an audio file at the given sample rate,
// optionally downmixing to mono, and returns the path of the new file. The
// input file is left in place.
func (t *Transcoder) ConvertAudioFormat(ctx context.Context, path string, sampleRate int, mono bool) (string, error) {
	tmp, err := os.CreateTemp("", "vaani_conv_*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp conversion file: %w", err)
	}
	outPath := tmp.Name()
	tmp.Close()

	args := []string{"-i", path}
	if mono {
		args = append(args, "-ac", "1")
	}
	args = append(args,
		"-ar", strconv.Itoa(sampleRate),
		"-loglevel", "quiet",
		"-y", outPath,
	)

	cmd := exec.CommandContext(ctx, t.binary, args...)
	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("convert audio format: %w", err)
	}

	return outPath, nil
}

// DecodeSamples decodes any audio file into mono float32 samples at 16 kHz,
// the canonical rate the ASR models expect.
func (t *Transcoder) DecodeSamples(ctx context.Context, path string) ([]float32, error) {
	cmd := exec.CommandContext(ctx, t.binary,
		"-i", path,
		"-f", "f32le",
		"-ac", "1",
		"-ar", "16000",
		"-loglevel", "quiet",
		"pipe:1",
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("decode audio samples: %w", err)
	}

	samples := SamplesFromF32LE(out.Bytes())

	t.log.Info("audio decoded",
		zap.String("path", path),
		zap.Float64("seconds", float64(len(samples))/16000))
	return samples, nil
}
