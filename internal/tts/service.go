package tts

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/internal/language"
)

// PlaybackSampleRate is the sample rate of the canonical playback format.
const PlaybackSampleRate = 22050

// Engine is the capability interface for the underlying speech synthesis
// model. It returns the path of a transient audio artifact.
type Engine interface {
	Synthesize(ctx context.Context, text, voiceCode string) (string, error)
}

// Converter converts an audio artifact into the canonical playback format.
// Satisfied by the media transcoder.
type Converter interface {
	ConvertAudioFormat(ctx context.Context, path string, sampleRate int, mono bool) (string, error)
}

// Service produces playable speech artifacts for translated text. Synthesis
// failure degrades to "no audio": the returned handle is empty and no error
// escapes.
type Service struct {
	engine    Engine
	converter Converter
	log       *zap.Logger
}

// NewService creates a synthesis service. The converter may be nil, in which
// case artifacts are returned in whatever format the engine produced.
func NewService(engine Engine, converter Converter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:    engine,
		converter: converter,
		log:       logger.With(zap.String("component", "tts")),
	}
}

// Synthesize renders text as speech in the voice registered for the given
// language name and returns the artifact path, or "" when no audio could be
// produced. Non-WAV artifacts are converted to mono 22.05 kHz WAV when a
// converter is available; a failed conversion keeps the original artifact
// rather than failing the call.
func (s *Service) Synthesize(ctx context.Context, text, languageName string) string {
	voice := language.Resolve(languageName).VoiceCode

	path, err := s.engine.Synthesize(ctx, text, voice)
	if err != nil {
		s.log.Error("synthesis failed, no audio available",
			zap.String("voice", voice),
			zap.Error(err))
		return ""
	}
	if path == "" {
		return ""
	}

	if s.converter == nil || strings.HasSuffix(path, ".wav") {
		return path
	}

	converted, err := s.converter.ConvertAudioFormat(ctx, path, PlaybackSampleRate, true)
	if err != nil {
		s.log.Warn("playback conversion failed, keeping original artifact",
			zap.String("artifact", path),
			zap.Error(err))
		return path
	}

	if err := os.Remove(path); err != nil {
		s.log.Warn("could not remove pre-conversion artifact",
			zap.String("artifact", path),
			zap.Error(err))
	}
	return converted
}
