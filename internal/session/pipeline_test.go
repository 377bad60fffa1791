package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vaani-ai/vaani/pkg/models"
)

type stubTranscriber struct {
	text  string
	panic bool
}

func (s *stubTranscriber) Transcribe(ctx context.Context, samples []float32, sourceLang string) string {
	if s.panic {
		panic("model crashed")
	}
	return s.text
}

type stubTranslator struct {
	translations map[string]string
}

func (s *stubTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) string {
	if out, ok := s.translations[text]; ok {
		return out
	}
	return text
}

// fileSynthesizer writes a real temp file per call so artifact cleanup can be
// observed on disk.
type fileSynthesizer struct {
	t     *testing.T
	calls int
}

func (s *fileSynthesizer) Synthesize(ctx context.Context, text, languageName string) string {
	s.calls++
	path := filepath.Join(s.t.TempDir(), fmt.Sprintf("speech_%d.mp3", s.calls))
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		s.t.Fatalf("write artifact: %v", err)
	}
	return path
}

type emptySynthesizer struct{}

func (emptySynthesizer) Synthesize(ctx context.Context, text, languageName string) string {
	return ""
}

type stubDecoder struct {
	samples     []float32
	decodeErr   error
	extractErr  error
	trackPath   string
	decodedPath string
}

func (d *stubDecoder) DecodeSamples(ctx context.Context, path string) ([]float32, error) {
	d.decodedPath = path
	return d.samples, d.decodeErr
}

func (d *stubDecoder) ExtractAudioTrack(ctx context.Context, videoPath string) (string, error) {
	return d.trackPath, d.extractErr
}

func newTestPipeline(t *testing.T, transcript string) (*Pipeline, *fileSynthesizer) {
	synth := &fileSynthesizer{t: t}
	p := NewPipeline(
		&stubTranscriber{text: transcript},
		&stubTranslator{translations: map[string]string{"good morning": "सुप्रभात"}},
		synth,
		&stubDecoder{},
		nil,
		nil,
	)
	return p, synth
}

func TestProcessSamplesEndToEnd(t *testing.T) {
	p, _ := newTestPipeline(t, "good morning")
	sess := models.NewSession("s1", "english", "hindi")

	result := p.ProcessSamples(context.Background(), sess, make([]float32, 16000))

	if result.Status != models.StatusDone {
		t.Fatalf("status = %q, want done (message: %s)", result.Status, result.Message)
	}
	if sess.Status != models.StatusDone {
		t.Errorf("session status = %q, want done", sess.Status)
	}
	if sess.CurrentTranscription != "good morning" {
		t.Errorf("transcription = %q", sess.CurrentTranscription)
	}
	if sess.CurrentTranslation != "सुप्रभात" {
		t.Errorf("translation = %q", sess.CurrentTranslation)
	}
	if sess.LastArtifact == "" {
		t.Error("expected a speech artifact path")
	}
	if len(sess.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(sess.History))
	}
	if sess.History[0].Original != "good morning" || sess.History[0].Translated != "सुप्रभात" {
		t.Errorf("history[0] = %+v", sess.History[0])
	}
}

func TestProcessSamplesRejectsEmptyInput(t *testing.T) {
	p, synth := newTestPipeline(t, "good morning")
	sess := models.NewSession("s1", "english", "hindi")
	sess.CurrentTranscription = "previous"
	sess.CurrentTranslation = "पिछला"

	result := p.ProcessSamples(context.Background(), sess, nil)

	if result.Status != models.StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if sess.CurrentTranscription != "previous" || sess.CurrentTranslation != "पिछला" {
		t.Error("previous results must survive an input validation failure")
	}
	if synth.calls != 0 {
		t.Error("no synthesis should happen for rejected input")
	}
}

func TestProcessSamplesEmptyTranscriptLeavesStateIntact(t *testing.T) {
	p, synth := newTestPipeline(t, "   ")
	sess := models.NewSession("s1", "english", "hindi")
	sess.CurrentTranscription = "previous"
	sess.CurrentTranslation = "पिछला"

	result := p.ProcessSamples(context.Background(), sess, make([]float32, 16000))

	if result.Status != models.StatusDone {
		t.Fatalf("status = %q, want done", result.Status)
	}
	if result.Message != "No speech detected." {
		t.Errorf("message = %q", result.Message)
	}
	if sess.CurrentTranscription != "previous" || sess.CurrentTranslation != "पिछला" {
		t.Error("silence must not clear the previous transcript or translation")
	}
	if len(sess.History) != 0 {
		t.Error("silence must not add a history entry")
	}
	if synth.calls != 0 {
		t.Error("silence must not reach synthesis")
	}
}

func TestHistoryStaysBoundedNewestFirst(t *testing.T) {
	synth := &fileSynthesizer{t: t}
	tr := &stubTranscriber{}
	p := NewPipeline(tr, &stubTranslator{}, synth, &stubDecoder{}, nil, nil)
	sess := models.NewSession("s1", "english", "hindi")

	for i := 0; i < models.DefaultMaxHistoryItems+3; i++ {
		tr.text = fmt.Sprintf("utterance %d", i)
		p.ProcessSamples(context.Background(), sess, make([]float32, 100))
	}

	if len(sess.History) != models.DefaultMaxHistoryItems {
		t.Fatalf("history length = %d, want %d", len(sess.History), models.DefaultMaxHistoryItems)
	}
	if sess.History[0].Original != fmt.Sprintf("utterance %d", models.DefaultMaxHistoryItems+2) {
		t.Errorf("history[0] = %q, want the newest utterance", sess.History[0].Original)
	}
}

func TestPreviousArtifactIsDeletedBeforeNextRun(t *testing.T) {
	p, _ := newTestPipeline(t, "good morning")
	sess := models.NewSession("s1", "english", "hindi")

	p.ProcessSamples(context.Background(), sess, make([]float32, 100))
	first := sess.LastArtifact
	if first == "" {
		t.Fatal("expected artifact from first run")
	}

	p.ProcessSamples(context.Background(), sess, make([]float32, 100))
	second := sess.LastArtifact

	if second == first {
		t.Fatal("second run produced the same artifact path")
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("first artifact %s should have been deleted, stat err = %v", first, err)
	}
	if _, err := os.Stat(second); err != nil {
		t.Errorf("second artifact should exist: %v", err)
	}
}

func TestSynthesisFailureStillSucceeds(t *testing.T) {
	p := NewPipeline(
		&stubTranscriber{text: "good morning"},
		&stubTranslator{},
		emptySynthesizer{},
		&stubDecoder{},
		nil,
		nil,
	)
	sess := models.NewSession("s1", "english", "hindi")

	result := p.ProcessSamples(context.Background(), sess, make([]float32, 100))

	if result.Status != models.StatusDone {
		t.Fatalf("status = %q, want done despite missing audio", result.Status)
	}
	if sess.LastArtifact != "" {
		t.Errorf("artifact = %q, want empty", sess.LastArtifact)
	}
	if len(sess.History) != 1 {
		t.Error("text results must still be recorded")
	}
}

func TestPanicIsContainedAndPreviousResultsSurvive(t *testing.T) {
	p := NewPipeline(
		&stubTranscriber{panic: true},
		&stubTranslator{},
		emptySynthesizer{},
		&stubDecoder{},
		nil,
		nil,
	)
	sess := models.NewSession("s1", "english", "hindi")
	sess.CurrentTranscription = "previous"
	sess.CurrentTranslation = "पिछला"

	result := p.ProcessSamples(context.Background(), sess, make([]float32, 100))

	if result.Status != models.StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if !strings.Contains(result.Message, "Unexpected error while processing") {
		t.Errorf("message = %q", result.Message)
	}
	if sess.Status != models.StatusError {
		t.Errorf("session status = %q, want error", sess.Status)
	}
	if sess.CurrentTranscription != "previous" || sess.CurrentTranslation != "पिछला" {
		t.Error("previous results must survive a contained panic")
	}
}

func TestProcessAudioFileDecodeFailure(t *testing.T) {
	p := NewPipeline(
		&stubTranscriber{text: "good morning"},
		&stubTranslator{},
		emptySynthesizer{},
		&stubDecoder{decodeErr: errors.New("corrupt file")},
		nil,
		nil,
	)
	sess := models.NewSession("s1", "english", "hindi")

	result := p.ProcessAudioFile(context.Background(), sess, "/tmp/broken.wav")

	if result.Status != models.StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if !strings.Contains(result.Message, "Error processing audio") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestProcessVideoFileRemovesExtractedTrack(t *testing.T) {
	track := filepath.Join(t.TempDir(), "track.wav")
	if err := os.WriteFile(track, []byte("wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	decoder := &stubDecoder{samples: make([]float32, 100), trackPath: track}
	p := NewPipeline(
		&stubTranscriber{text: "good morning"},
		&stubTranslator{},
		emptySynthesizer{},
		decoder,
		nil,
		nil,
	)
	sess := models.NewSession("s1", "english", "hindi")

	result := p.ProcessVideoFile(context.Background(), sess, "/tmp/clip.mp4")

	if result.Status != models.StatusDone {
		t.Fatalf("status = %q, want done (message: %s)", result.Status, result.Message)
	}
	if result.Message != "Video file processed successfully!" {
		t.Errorf("message = %q", result.Message)
	}
	if decoder.decodedPath != track {
		t.Errorf("decoded %q, want the extracted track %q", decoder.decodedPath, track)
	}
	if _, err := os.Stat(track); !os.IsNotExist(err) {
		t.Errorf("extracted track should be deleted, stat err = %v", err)
	}
}

func TestProcessVideoFileExtractionFailure(t *testing.T) {
	p := NewPipeline(
		&stubTranscriber{},
		&stubTranslator{},
		emptySynthesizer{},
		&stubDecoder{extractErr: errors.New("no audio stream")},
		nil,
		nil,
	)
	sess := models.NewSession("s1", "english", "hindi")

	result := p.ProcessVideoFile(context.Background(), sess, "/tmp/clip.mp4")

	if result.Status != models.StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if !strings.Contains(result.Message, "Error processing video") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestSetLanguagesNormalizesCase(t *testing.T) {
	p, _ := newTestPipeline(t, "x")
	sess := models.NewSession("s1", "english", "hindi")

	msg, err := p.SetLanguages(sess, "  TAMIL ", "Bengali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SourceLang != "tamil" || sess.TargetLang != "bengali" {
		t.Errorf("languages = %q → %q", sess.SourceLang, sess.TargetLang)
	}
	if msg != "Languages changed to Tamil → Bengali" {
		t.Errorf("message = %q", msg)
	}
}

func TestSetLanguagesRejectsUnsupportedWithoutMutation(t *testing.T) {
	p, _ := newTestPipeline(t, "x")
	sess := models.NewSession("s1", "english", "hindi")

	if _, err := p.SetLanguages(sess, "french", "hindi"); err == nil {
		t.Fatal("expected error for unsupported source language")
	}
	if sess.SourceLang != "english" || sess.TargetLang != "hindi" {
		t.Error("failed language change must not mutate the session")
	}
}

func TestHistoryDisplay(t *testing.T) {
	p, _ := newTestPipeline(t, "x")
	sess := models.NewSession("s1", "english", "hindi")

	if got := p.HistoryDisplay(sess); got != "No translations yet. Upload a file to get started!" {
		t.Errorf("empty history display = %q", got)
	}

	sess.AddHistory(models.HistoryItem{
		Original:   "good morning",
		Translated: "सुप्रभात",
		Timestamp:  "09:15:00",
		SourceLang: "english",
		TargetLang: "hindi",
	})

	got := p.HistoryDisplay(sess)
	for _, want := range []string{"[09:15:00] English → Hindi", "Original: good morning", "Translated: सुप्रभात"} {
		if !strings.Contains(got, want) {
			t.Errorf("display missing %q:\n%s", want, got)
		}
	}
}

func TestResultEventIsEmittedOnSuccess(t *testing.T) {
	var events []*models.ResultEvent
	p := NewPipeline(
		&stubTranscriber{text: "good morning"},
		&stubTranslator{translations: map[string]string{"good morning": "सुप्रभात"}},
		emptySynthesizer{},
		&stubDecoder{},
		func(e *models.ResultEvent) { events = append(events, e) },
		nil,
	)
	sess := models.NewSession("s1", "english", "hindi")

	p.ProcessSamples(context.Background(), sess, make([]float32, 100))

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].SessionID != "s1" || events[0].TargetText != "सुप्रभात" {
		t.Errorf("event = %+v", events[0])
	}
}
