package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/pkg/models"
)

// ConnectionManager tracks WebSocket connections per session and pushes
// pipeline results to them as they complete.
type ConnectionManager struct {
	// sessionID -> clientID -> connection
	sessions map[string]map[string]*websocket.Conn
	mu       sync.RWMutex
	log      *zap.Logger
}

// NewConnectionManager creates an empty ConnectionManager.
func NewConnectionManager(logger *zap.Logger) *ConnectionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionManager{
		sessions: make(map[string]map[string]*websocket.Conn),
		log:      logger.With(zap.String("component", "websocket")),
	}
}

// AddConnection registers a client connection under a session.
func (cm *ConnectionManager) AddConnection(sessionID, clientID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.sessions[sessionID] == nil {
		cm.sessions[sessionID] = make(map[string]*websocket.Conn)
	}
	cm.sessions[sessionID][clientID] = conn

	cm.log.Info("connection added",
		zap.String("session", sessionID),
		zap.String("client", clientID),
		zap.Int("total", len(cm.sessions[sessionID])))
}

// RemoveConnection unregisters a client connection; empty sessions are
// dropped from the table.
func (cm *ConnectionManager) RemoveConnection(sessionID, clientID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.sessions[sessionID] == nil {
		return
	}
	delete(cm.sessions[sessionID], clientID)
	if len(cm.sessions[sessionID]) == 0 {
		delete(cm.sessions, sessionID)
	}

	cm.log.Info("connection removed",
		zap.String("session", sessionID),
		zap.String("client", clientID))
}

// BroadcastToSession writes a message to every client of a session; failed
// connections are removed.
func (cm *ConnectionManager) BroadcastToSession(sessionID string, message interface{}) {
	cm.mu.RLock()
	clients := make(map[string]*websocket.Conn, len(cm.sessions[sessionID]))
	for clientID, conn := range cm.sessions[sessionID] {
		clients[clientID] = conn
	}
	cm.mu.RUnlock()

	var failed []string
	for clientID, conn := range clients {
		if err := conn.WriteJSON(message); err != nil {
			cm.log.Warn("broadcast write failed",
				zap.String("session", sessionID),
				zap.String("client", clientID),
				zap.Error(err))
			failed = append(failed, clientID)
		}
	}

	for _, clientID := range failed {
		cm.RemoveConnection(sessionID, clientID)
	}
}

// BroadcastResult pushes one pipeline result to the session's clients.
func (cm *ConnectionManager) BroadcastResult(event *models.ResultEvent) {
	message := map[string]interface{}{
		"type":          "result",
		"id":            event.ID,
		"session_id":    event.SessionID,
		"timestamp":     event.Timestamp,
		"source_text":   event.SourceText,
		"source_lang":   event.SourceLang,
		"target_text":   event.TargetText,
		"target_lang":   event.TargetLang,
		"artifact_path": event.ArtifactPath,
	}

	cm.BroadcastToSession(event.SessionID, message)
}

// SessionClients returns how many clients are connected to a session.
func (cm *ConnectionManager) SessionClients(sessionID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.sessions[sessionID])
}
