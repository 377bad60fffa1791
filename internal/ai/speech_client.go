package ai

import (
	"context"
	"fmt"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// SpeechClient is a text-to-speech client backed by an OpenAI-compatible
// speech endpoint. The endpoint infers the spoken language from the text
// itself; the registry voice code selects among configured endpoint voices
// when a mapping is configured, otherwise the default voice is used.
type SpeechClient struct {
	client *openai.Client
	model  string
	voice  string
	// voiceOverrides maps registry voice codes to endpoint voice names.
	voiceOverrides map[string]string
}

// NewSpeechClient creates a SpeechClient for the given model and default
// voice names.
func NewSpeechClient(client *openai.Client, model, voice string, voiceOverrides map[string]string) (*SpeechClient, error) {
	if client == nil {
		return nil, fmt.Errorf("OpenAI client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("speech model name is required")
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &SpeechClient{
		client:         client,
		model:          model,
		voice:          voice,
		voiceOverrides: voiceOverrides,
	}, nil
}

// Synthesize renders text as speech and writes the result to a temporary MP3
// file, returning its path. The caller owns the file.
func (s *SpeechClient) Synthesize(ctx context.Context, text, voiceCode string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text to synthesize is empty")
	}

	voice := s.voice
	if override, ok := s.voiceOverrides[voiceCode]; ok {
		voice = override
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.model),
		Input: text,
		Voice: openai.SpeechVoice(voice),
	})
	if err != nil {
		return "", fmt.Errorf("speech API call: %w", err)
	}
	defer resp.Close()

	file, err := os.CreateTemp(os.TempDir(), "tts_*.mp3")
	if err != nil {
		return "", fmt.Errorf("create temp speech file: %w", err)
	}
	path := file.Name()

	if _, err := io.Copy(file, resp); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write speech artifact: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close speech artifact: %w", err)
	}

	return path, nil
}
