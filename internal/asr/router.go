package asr

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/internal/language"
)

// SampleRate is the canonical sample rate all inbound audio is resampled to
// before reaching a model.
const SampleRate = 16000

// Model is the capability interface for one ASR model variant. The language
// hint may be empty, in which case the model auto-detects.
type Model interface {
	Transcribe(ctx context.Context, samples []float32, languageHint string) (string, error)
}

// Router selects the ASR model variant for a source language and invokes it.
// English runs on the fast variant; every other configured language runs on
// the accurate one. Languages outside the tuned set also run on the accurate
// variant but without a forced language hint, so the model can auto-detect
// instead of being pushed toward a wrong language.
type Router struct {
	fast     Model
	accurate Model
	log      *zap.Logger
}

// NewRouter creates a Router over the fast and accurate model variants.
func NewRouter(fast, accurate Model, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		fast:     fast,
		accurate: accurate,
		log:      logger.With(zap.String("component", "asr")),
	}
}

// Transcribe runs the selected model variant over the samples. A model
// failure or an empty decode yields an empty transcript, never an error:
// downstream stages treat an empty transcript as "nothing said".
func (r *Router) Transcribe(ctx context.Context, samples []float32, sourceLang string) string {
	profile := language.Resolve(sourceLang)

	model := r.accurate
	if profile.Tier == language.TierFast {
		model = r.fast
	}

	r.log.Info("transcribing",
		zap.String("source_lang", sourceLang),
		zap.String("tier", profile.Tier),
		zap.String("hint", profile.ASRHint),
		zap.Int("samples", len(samples)))

	text, err := model.Transcribe(ctx, samples, profile.ASRHint)
	if err != nil {
		r.log.Error("transcription failed, degrading to empty transcript",
			zap.String("tier", profile.Tier),
			zap.Error(err))
		return ""
	}

	return strings.TrimSpace(text)
}
