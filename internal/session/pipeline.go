package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/internal/language"
	"github.com/vaani-ai/vaani/pkg/models"
)

// Transcriber converts audio samples to text for a source language. An empty
// transcript means "nothing said"; transcription never returns an error.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sourceLang string) string
}

// Translator converts text between language names, degrading to the original
// text on failure.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) string
}

// Synthesizer produces a speech artifact for text in a target language, or
// "" when no audio could be produced.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageName string) string
}

// MediaDecoder loads media files into canonical-rate samples and extracts
// audio tracks from video containers.
type MediaDecoder interface {
	DecodeSamples(ctx context.Context, path string) ([]float32, error)
	ExtractAudioTrack(ctx context.Context, videoPath string) (string, error)
}

// Pipeline sequences ASR, translation, and speech synthesis for a session and
// owns all session state transitions. Failures inside the leaf services have
// already been degraded to usable values by the time they reach the pipeline;
// only input validation, media decoding, and genuinely unexpected failures
// produce an error status here.
type Pipeline struct {
	transcriber Transcriber
	translator  Translator
	synthesizer Synthesizer
	decoder     MediaDecoder
	onResult    func(*models.ResultEvent)
	log         *zap.Logger
}

// NewPipeline creates a Pipeline. onResult, when non-nil, receives a record
// of every successful run (for broadcast and archiving); it must not block.
func NewPipeline(
	transcriber Transcriber,
	translator Translator,
	synthesizer Synthesizer,
	decoder MediaDecoder,
	onResult func(*models.ResultEvent),
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		transcriber: transcriber,
		translator:  translator,
		synthesizer: synthesizer,
		decoder:     decoder,
		onResult:    onResult,
		log:         logger.With(zap.String("component", "pipeline")),
	}
}

// ProcessSamples runs one utterance of mono 16 kHz samples through the full
// ASR → translation → synthesis chain and updates the session.
func (p *Pipeline) ProcessSamples(ctx context.Context, sess *models.Session, samples []float32) *models.ProcessResult {
	if len(samples) == 0 {
		sess.Status = models.StatusError
		return &models.ProcessResult{
			Status:  models.StatusError,
			Message: "No audio provided. Record or upload something first.",
		}
	}

	return p.run(ctx, sess, func() ([]float32, error) {
		return samples, nil
	})
}

// ProcessAudioFile decodes an audio file to canonical samples and processes
// it like a live utterance. A decode failure reports an error status and
// leaves the previous transcript and translation intact.
func (p *Pipeline) ProcessAudioFile(ctx context.Context, sess *models.Session, path string) *models.ProcessResult {
	if path == "" {
		sess.Status = models.StatusError
		return &models.ProcessResult{
			Status:  models.StatusError,
			Message: "Please select an audio file first.",
		}
	}

	return p.run(ctx, sess, func() ([]float32, error) {
		return p.decoder.DecodeSamples(ctx, path)
	})
}

// ProcessVideoFile extracts the audio track from a video file and delegates
// to the audio path. The extracted temp file is deleted regardless of
// outcome.
func (p *Pipeline) ProcessVideoFile(ctx context.Context, sess *models.Session, path string) *models.ProcessResult {
	if path == "" {
		sess.Status = models.StatusError
		return &models.ProcessResult{
			Status:  models.StatusError,
			Message: "Please select a video file first.",
		}
	}

	audioPath, err := p.decoder.ExtractAudioTrack(ctx, path)
	if err != nil {
		p.log.Error("video audio extraction failed", zap.String("video", path), zap.Error(err))
		sess.Status = models.StatusError
		return &models.ProcessResult{
			Status:  models.StatusError,
			Message: fmt.Sprintf("Error processing video: %v", err),
		}
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil {
			p.log.Warn("could not remove extracted audio track", zap.String("path", audioPath), zap.Error(err))
		}
	}()

	result := p.ProcessAudioFile(ctx, sess, audioPath)
	if result.Status == models.StatusDone && result.Transcript != "" {
		result.Message = "Video file processed successfully!"
	}
	return result
}

// run is the shared state machine: processing → cleanup → load samples →
// ASR → translate → history → synthesize → done. Unexpected panics are
// contained here; they surface as an error status with the previous good
// transcript and translation untouched.
func (p *Pipeline) run(ctx context.Context, sess *models.Session, load func() ([]float32, error)) (result *models.ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("unexpected pipeline failure",
				zap.String("session", sess.ID),
				zap.Any("panic", r))
			sess.Status = models.StatusError
			result = &models.ProcessResult{
				Status:  models.StatusError,
				Message: fmt.Sprintf("Unexpected error while processing: %v", r),
			}
		}
	}()

	sess.Status = models.StatusProcessing
	p.cleanupPreviousArtifact(sess)

	samples, err := load()
	if err != nil {
		p.log.Error("audio decode failed", zap.String("session", sess.ID), zap.Error(err))
		sess.Status = models.StatusError
		return &models.ProcessResult{
			Status:  models.StatusError,
			Message: fmt.Sprintf("Error processing audio: %v", err),
		}
	}

	transcript := p.transcriber.Transcribe(ctx, samples, sess.SourceLang)
	if strings.TrimSpace(transcript) == "" {
		// Nothing detected: not an error, and the previous transcript and
		// translation stay visible.
		sess.Status = models.StatusDone
		return &models.ProcessResult{
			Status:  models.StatusDone,
			Message: "No speech detected.",
		}
	}

	p.checkScript(sess.SourceLang, transcript)

	translated := p.translator.Translate(ctx, transcript, sess.SourceLang, sess.TargetLang)

	sess.CurrentTranscription = transcript
	sess.CurrentTranslation = translated
	sess.LastUpdate = time.Now()
	sess.AddHistory(models.HistoryItem{
		Original:   transcript,
		Translated: translated,
		Timestamp:  sess.LastUpdate.Format("15:04:05"),
		SourceLang: sess.SourceLang,
		TargetLang: sess.TargetLang,
	})

	artifact := p.synthesizer.Synthesize(ctx, translated, sess.TargetLang)
	sess.LastArtifact = artifact
	sess.Status = models.StatusDone

	p.log.Info("utterance processed",
		zap.String("session", sess.ID),
		zap.String("source_lang", sess.SourceLang),
		zap.String("target_lang", sess.TargetLang),
		zap.Bool("audio", artifact != ""))

	if p.onResult != nil {
		p.onResult(models.NewResultEvent(
			sess.ID, transcript, sess.SourceLang, translated, sess.TargetLang, artifact,
		))
	}

	return &models.ProcessResult{
		Status:       models.StatusDone,
		Message:      "Audio processed successfully!",
		Transcript:   transcript,
		Translation:  translated,
		ArtifactPath: artifact,
	}
}

// SetLanguages updates the session's language selection. Languages are plain
// per-session data threaded through every model call; nothing process-wide is
// mutated, so concurrent sessions cannot clobber each other's selection.
func (p *Pipeline) SetLanguages(sess *models.Session, source, target string) (string, error) {
	src := strings.ToLower(strings.TrimSpace(source))
	tgt := strings.ToLower(strings.TrimSpace(target))

	if !language.Supported(src) {
		return "", fmt.Errorf("unsupported source language: %q", source)
	}
	if !language.Supported(tgt) {
		return "", fmt.Errorf("unsupported target language: %q", target)
	}

	sess.SourceLang = src
	sess.TargetLang = tgt

	p.log.Info("languages changed",
		zap.String("session", sess.ID),
		zap.String("source_lang", src),
		zap.String("target_lang", tgt))

	return fmt.Sprintf("Languages changed to %s → %s", title(src), title(tgt)), nil
}

// HistoryDisplay formats the rolling history, newest first, for the UI.
func (p *Pipeline) HistoryDisplay(sess *models.Session) string {
	if len(sess.History) == 0 {
		return "No translations yet. Upload a file to get started!"
	}

	var b strings.Builder
	for _, item := range sess.History {
		fmt.Fprintf(&b, "[%s] %s → %s\n", item.Timestamp, title(item.SourceLang), title(item.TargetLang))
		fmt.Fprintf(&b, "  Original: %s\n", item.Original)
		fmt.Fprintf(&b, "  Translated: %s\n", item.Translated)
	}
	return b.String()
}

// cleanupPreviousArtifact deletes the session's previous speech artifact so
// no two live artifacts exist for the same session. Deletion failure is
// logged and never blocks the request.
func (p *Pipeline) cleanupPreviousArtifact(sess *models.Session) {
	if sess.LastArtifact == "" {
		return
	}

	if err := os.Remove(sess.LastArtifact); err != nil && !os.IsNotExist(err) {
		p.log.Warn("could not clean up previous artifact",
			zap.String("artifact", sess.LastArtifact),
			zap.Error(err))
	}
	sess.LastArtifact = ""
}

// checkScript warns when a Hindi transcript contains no Devanagari code
// points, a symptom of the ASR model ignoring the language hint.
func (p *Pipeline) checkScript(sourceLang, transcript string) {
	if strings.ToLower(sourceLang) != "hindi" {
		return
	}
	for _, r := range transcript {
		if r >= 0x0900 && r <= 0x097F {
			return
		}
	}
	p.log.Warn("hindi transcript contains no Devanagari script")
}

// title upper-cases the first letter of a language name for display.
func title(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
