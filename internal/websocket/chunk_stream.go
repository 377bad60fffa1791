package websocket

import (
	"context"
	"io"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vaani-ai/vaani/internal/media"
)

// ChunkStream reads audio chunks from a WebSocket connection. Clients send
// binary messages of raw little-endian float32 samples at the canonical 16 kHz
// mono rate; text messages are ignored. A closed connection ends the stream
// with io.EOF.
type ChunkStream struct {
	conn     *websocket.Conn
	done     chan struct{}
	doneOnce sync.Once
}

// NewChunkStream wraps a connection as a chunk source. The stream reads from
// the connection; the caller must not read from it concurrently.
func NewChunkStream(conn *websocket.Conn) *ChunkStream {
	return &ChunkStream{
		conn: conn,
		done: make(chan struct{}),
	}
}

// ReadChunk returns the next binary message decoded as samples.
func (s *ChunkStream) ReadChunk(ctx context.Context) ([]float32, error) {
	for {
		if err := ctx.Err(); err != nil {
			s.doneOnce.Do(func() { close(s.done) })
			return nil, err
		}

		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			s.doneOnce.Do(func() { close(s.done) })
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, err
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		return media.SamplesFromF32LE(data), nil
	}
}

// Done is closed once the stream has ended, whether by a clean close or a
// read failure.
func (s *ChunkStream) Done() <-chan struct{} {
	return s.done
}
