package route

import (
	"sync"

	"github.com/google/uuid"
)

// Recording is the shared sink of one dry-run walk. Leaf nodes reached during
// the walk report the destination they would have sent to; reports from
// possibly-recursive call sites are appended under a mutex, so the final
// order matches visitation order and no report is lost under interleaving.
//
// A Recording completes exactly once: the walk calls Finish after the
// top-level routing call returns, and consumers block in Wait until then.
type Recording struct {
	id string

	mu           sync.Mutex
	destinations []string

	done     chan struct{}
	doneOnce sync.Once
}

// NewRecording creates the sink for one dry-run walk.
func NewRecording() *Recording {
	return &Recording{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// ID returns the unique identifier of this walk, used for log correlation.
func (r *Recording) ID() string { return r.id }

// Report appends a destination identifier to the walk's result. It may be
// called zero, one, or many times during a single walk, from any goroutine.
func (r *Recording) Report(destination string) {
	r.mu.Lock()
	r.destinations = append(r.destinations, destination)
	r.mu.Unlock()
}

// Finish fires the completion signal. Extra calls are no-ops; exactly one
// signal is delivered per recording.
func (r *Recording) Finish() {
	r.doneOnce.Do(func() { close(r.done) })
}

// Wait blocks until Finish has been called.
func (r *Recording) Wait() {
	<-r.done
}

// Destinations returns a copy of the destinations reported so far, in
// report order.
func (r *Recording) Destinations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.destinations))
	copy(out, r.destinations)
	return out
}
