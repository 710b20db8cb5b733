package stream

// EventType tags one unit of a streamed model response forwarded to the
// client in arrival order.
type EventType string

const (
	// EventClear tells the client to discard any stale partial view.
	EventClear EventType = "clear"
	// EventTextDelta carries a text fragment to append.
	EventTextDelta EventType = "text-delta"
	// EventCodeDelta carries the full current code value; each event is a
	// complete replacement, not a fragment.
	EventCodeDelta EventType = "code-delta"
	// EventFinish marks the end of the stream.
	EventFinish EventType = "finish"
)

type Event struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

// DataStreamWriter is the one-directional client data channel. Writes happen
// in arrival order of the underlying model stream; a write error means the
// client is gone and the producer must stop.
type DataStreamWriter interface {
	WriteEvent(event Event) error
}
