package websocket

import (
	"sync"

	"ai-chat-be/pkg/stream"

	"github.com/gofiber/websocket/v2"
)

// StreamWriter adapts a websocket connection to the data stream contract used
// by the document updater. Events go out as JSON text frames in write order.
type StreamWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

var _ stream.DataStreamWriter = &StreamWriter{}

func NewStreamWriter(conn *websocket.Conn) *StreamWriter {
	return &StreamWriter{conn: conn}
}

func (w *StreamWriter) WriteEvent(event stream.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(event)
}
