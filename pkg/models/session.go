package models

import "time"

// Status reflects the outcome of the most recent pipeline operation on a session.
type Status string

const (
	// StatusIdle is the initial state before any processing has happened.
	StatusIdle Status = "idle"
	// StatusProcessing is set while a request runs through the pipeline.
	StatusProcessing Status = "processing"
	// StatusDone is the stable terminal state after a successful run.
	StatusDone Status = "done"
	// StatusError is the terminal state after a failure the pipeline could not degrade.
	StatusError Status = "error"
)

// DefaultMaxHistoryItems bounds the rolling translation history per session.
const DefaultMaxHistoryItems = 10

// HistoryItem is a single completed translation, immutable once created.
type HistoryItem struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Timestamp  string `json:"timestamp"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Session holds the per-user mutable translation state. A session is owned by
// one request at a time; only the pipeline mutates its fields.
type Session struct {
	ID                   string        `json:"id"`
	SourceLang           string        `json:"source_lang"`
	TargetLang           string        `json:"target_lang"`
	CurrentTranscription string        `json:"current_transcription"`
	CurrentTranslation   string        `json:"current_translation"`
	LastUpdate           time.Time     `json:"last_update"`
	History              []HistoryItem `json:"history"`
	Status               Status        `json:"status"`
	MaxHistoryItems      int           `json:"max_history_items"`

	// LastArtifact is the path of the most recent synthesized speech file.
	// The pipeline deletes it before producing the next one.
	LastArtifact string `json:"-"`
}

// NewSession creates an empty idle session with the given language selection.
func NewSession(id, sourceLang, targetLang string) *Session {
	return &Session{
		ID:              id,
		SourceLang:      sourceLang,
		TargetLang:      targetLang,
		Status:          StatusIdle,
		MaxHistoryItems: DefaultMaxHistoryItems,
	}
}

// AddHistory prepends a history item and evicts the oldest entry when the
// bound is exceeded.
func (s *Session) AddHistory(item HistoryItem) {
	max := s.MaxHistoryItems
	if max <= 0 {
		max = DefaultMaxHistoryItems
	}

	s.History = append([]HistoryItem{item}, s.History...)
	if len(s.History) > max {
		s.History = s.History[:max]
	}
}

// ProcessResult is what every pipeline operation returns to the presentation
// layer: a machine-checkable status plus a human-readable message.
type ProcessResult struct {
	Status       Status `json:"status"`
	Message      string `json:"message"`
	Transcript   string `json:"transcript,omitempty"`
	Translation  string `json:"translation,omitempty"`
	ArtifactPath string `json:"artifact_path,omitempty"`
}
