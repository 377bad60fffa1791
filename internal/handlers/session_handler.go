package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/internal/language"
	"github.com/vaani-ai/vaani/internal/session"
	"github.com/vaani-ai/vaani/pkg/models"
)

// SessionHandler exposes the translation pipeline over HTTP. All inputs
// crossing this boundary are plain data: uploaded files land in temp paths,
// languages arrive as strings.
type SessionHandler struct {
	pipeline *session.Pipeline
	store    *SessionStore
	log      *zap.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(pipeline *session.Pipeline, store *SessionStore, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{
		pipeline: pipeline,
		store:    store,
		log:      logger.With(zap.String("component", "handlers")),
	}
}

// Register wires the handler's routes onto the router.
func (h *SessionHandler) Register(router *gin.Engine) {
	router.GET("/languages", h.Languages)

	v1 := router.Group("/v1/sessions")
	v1.POST("/:id/audio", h.ProcessAudio)
	v1.POST("/:id/video", h.ProcessVideo)
	v1.POST("/:id/languages", h.SetLanguages)
	v1.GET("/:id", h.GetSession)
	v1.GET("/:id/history", h.GetHistory)
	v1.GET("/:id/artifact", h.GetArtifact)
}

// processResponse is the JSON shape returned by the processing endpoints.
type processResponse struct {
	SessionID   string                `json:"session_id"`
	Result      *models.ProcessResult `json:"result"`
	Transcript  string                `json:"current_transcription"`
	Translation string                `json:"current_translation"`
}

// ProcessAudio accepts a multipart audio upload and runs it through the
// pipeline.
func (h *SessionHandler) ProcessAudio(c *gin.Context) {
	h.processUpload(c, "audio", h.pipeline.ProcessAudioFile)
}

// ProcessVideo accepts a multipart video upload, extracts the audio track,
// and runs it through the pipeline.
func (h *SessionHandler) ProcessVideo(c *gin.Context) {
	h.processUpload(c, "video", h.pipeline.ProcessVideoFile)
}

func (h *SessionHandler) processUpload(
	c *gin.Context,
	field string,
	process func(ctx context.Context, sess *models.Session, path string) *models.ProcessResult,
) {
	file, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a " + field + " file is required"})
		return
	}

	tempPath := filepath.Join(os.TempDir(), "upload_"+uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	defer os.Remove(tempPath)

	sess, release := h.store.Acquire(c.Param("id"))
	defer release()

	h.log.Info("upload received",
		zap.String("session", sess.ID),
		zap.String("field", field),
		zap.String("file", file.Filename),
		zap.Int64("bytes", file.Size))

	result := process(c.Request.Context(), sess, tempPath)

	status := http.StatusOK
	if result.Status == models.StatusError {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, processResponse{
		SessionID:   sess.ID,
		Result:      result,
		Transcript:  sess.CurrentTranscription,
		Translation: sess.CurrentTranslation,
	})
}

// setLanguagesRequest is the JSON body for SetLanguages.
type setLanguagesRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// SetLanguages updates the session's language selection.
func (h *SessionHandler) SetLanguages(c *gin.Context) {
	var req setLanguagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and target languages are required"})
		return
	}

	sess, release := h.store.Acquire(c.Param("id"))
	defer release()

	message, err := h.pipeline.SetLanguages(sess, req.Source, req.Target)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"message":    message,
		"source":     sess.SourceLang,
		"target":     sess.TargetLang,
	})
}

// GetSession returns a snapshot of the session state.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, release := h.store.Acquire(c.Param("id"))
	defer release()

	c.JSON(http.StatusOK, sess)
}

// GetHistory returns the rolling history, newest first, plus its display
// rendering.
func (h *SessionHandler) GetHistory(c *gin.Context) {
	sess, release := h.store.Acquire(c.Param("id"))
	defer release()

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"items":      sess.History,
		"display":    h.pipeline.HistoryDisplay(sess),
	})
}

// GetArtifact serves the session's most recent speech artifact.
func (h *SessionHandler) GetArtifact(c *gin.Context) {
	sess, release := h.store.Acquire(c.Param("id"))
	artifact := sess.LastArtifact
	release()

	if artifact == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no audio available"})
		return
	}
	if _, err := os.Stat(artifact); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact no longer exists"})
		return
	}

	c.File(artifact)
}

// Languages lists the supported language names.
func (h *SessionHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages":      language.Names(),
		"default_source": DefaultSourceLang,
		"default_target": DefaultTargetLang,
	})
}
