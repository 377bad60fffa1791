package ai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vaani-ai/vaani/internal/asr"
	"github.com/vaani-ai/vaani/internal/media"
)

// STTClient is a speech-to-text client backed by an OpenAI-compatible
// transcription endpoint. Two instances with different model names serve as
// the fast and accurate ASR variants.
type STTClient struct {
	client *openai.Client
	model  string
}

// NewSTTClient creates an STTClient for the given model name.
func NewSTTClient(client *openai.Client, model string) (*STTClient, error) {
	if client == nil {
		return nil, fmt.Errorf("OpenAI client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("STT model name is required")
	}
	return &STTClient{client: client, model: model}, nil
}

// Transcribe converts mono 16 kHz samples to text. The language hint is
// forwarded to the model when present; an empty hint lets it auto-detect.
func (s *STTClient) Transcribe(ctx context.Context, samples []float32, languageHint string) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("audio samples are empty")
	}

	tempFile, err := s.createTempAudioFile(samples)
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	defer os.Remove(tempFile)

	req := openai.AudioRequest{
		Model:    s.model,
		FilePath: tempFile,
		Language: languageHint,
	}

	resp, err := s.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcription API call: %w", err)
	}

	return resp.Text, nil
}

// createTempAudioFile stores the samples as a temporary WAV file for the
// file-based transcription API.
func (s *STTClient) createTempAudioFile(samples []float32) (string, error) {
	file, err := os.CreateTemp(os.TempDir(), "audio_*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := file.Name()
	file.Close()

	if err := media.WriteWAV(path, samples, asr.SampleRate); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write temp wav: %w", err)
	}

	return path, nil
}
