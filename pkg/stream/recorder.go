package stream

import "errors"

// ErrClosed is returned by a Recorder configured to fail, standing in for a
// broken client connection.
var ErrClosed = errors.New("stream: writer closed")

// Recorder buffers events in memory. Used by tests and by callers that want
// to inspect the emitted sequence after the fact.
type Recorder struct {
	Events []Event

	// FailAt makes WriteEvent fail on the nth call (1-based); zero disables.
	FailAt int

	writes int
}

func (r *Recorder) WriteEvent(event Event) error {
	r.writes++
	if r.FailAt > 0 && r.writes >= r.FailAt {
		return ErrClosed
	}
	r.Events = append(r.Events, event)
	return nil
}

// Types returns the emitted event types in order.
func (r *Recorder) Types() []EventType {
	types := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.Type
	}
	return types
}
