package models

import (
	"time"

	"github.com/google/uuid"
)

// ResultEvent is the record emitted after a successful pipeline run. It is
// broadcast to connected clients and optionally archived.
type ResultEvent struct {
	ID           string    `json:"id" bson:"_id"`
	SessionID    string    `json:"session_id" bson:"session_id"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	SourceText   string    `json:"source_text" bson:"source_text"`
	SourceLang   string    `json:"source_lang" bson:"source_lang"`
	TargetText   string    `json:"target_text" bson:"target_text"`
	TargetLang   string    `json:"target_lang" bson:"target_lang"`
	ArtifactPath string    `json:"artifact_path,omitempty" bson:"artifact_path,omitempty"`
}

// NewResultEvent creates a ResultEvent with a fresh ID and timestamp.
func NewResultEvent(sessionID, sourceText, sourceLang, targetText, targetLang, artifactPath string) *ResultEvent {
	return &ResultEvent{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		Timestamp:    time.Now(),
		SourceText:   sourceText,
		SourceLang:   sourceLang,
		TargetText:   targetText,
		TargetLang:   targetLang,
		ArtifactPath: artifactPath,
	}
}
