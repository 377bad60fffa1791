package repository

import (
	"context"

	"github.com/vaani-ai/vaani/pkg/models"
)

// ResultRepository is the data access interface for archived translation
// results. The archive is optional; in-memory session state is authoritative
// and nothing here sits on the request path.
type ResultRepository interface {
	// SaveResult persists one pipeline result.
	SaveResult(ctx context.Context, event *models.ResultEvent) error

	// GetResultsBySession returns a session's archived results, newest first.
	GetResultsBySession(ctx context.Context, sessionID string) ([]*models.ResultEvent, error)
}
