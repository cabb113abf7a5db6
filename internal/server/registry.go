package server

import (
	"context"
	"sync"
	"time"
)

// Status is the lifecycle state of one automation run.
type Status string

const (
	// StatusRunning means the run's worker goroutine is still executing.
	StatusRunning Status = "running"
	// StatusCompleted means the run finished with overall success.
	StatusCompleted Status = "completed"
	// StatusFailed means the run finished unsuccessfully.
	StatusFailed Status = "failed"
)

// Message is one log line emitted during a run.
type Message struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// timestampLayout matches the status API's message timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

type runState struct {
	status      Status
	pending     []Message
	subscribers []chan Message
	completedAt time.Time
}

// Registry tracks active and recently finished runs with an explicit
// lifecycle: created on start, updated per event, evicted a retention window
// after completion. All access is mutex-guarded; there is no ambient global
// state.
type Registry struct {
	mu        sync.Mutex
	runs      map[string]*runState
	retention time.Duration
}

// NewRegistry creates a Registry that keeps finished runs around for the
// given retention window.
func NewRegistry(retention time.Duration) *Registry {
	return &Registry{
		runs:      make(map[string]*runState),
		retention: retention,
	}
}

// Create registers a new run in the running state.
func (r *Registry) Create(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[id] = &runState{status: StatusRunning}
}

// Append records a log message for a run and fans it out to subscribers.
// Unknown run IDs are ignored.
func (r *Registry) Append(id string, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok {
		return
	}
	state.pending = append(state.pending, msg)
	for _, sub := range state.subscribers {
		select {
		case sub <- msg:
		default:
			// A slow subscriber drops messages rather than blocking the run.
		}
	}
}

// Complete marks a run finished and closes its subscriber channels.
func (r *Registry) Complete(id string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok {
		return
	}
	state.status = status
	state.completedAt = time.Now()
	for _, sub := range state.subscribers {
		close(sub)
	}
	state.subscribers = nil
}

// Status returns the run's lifecycle state.
func (r *Registry) Status(id string) (Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok {
		return "", false
	}
	return state.status, true
}

// Drain returns and clears the run's buffered messages, oldest first.
func (r *Registry) Drain(id string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok {
		return nil
	}
	msgs := state.pending
	state.pending = nil
	return msgs
}

// Subscribe returns a channel receiving the run's subsequent messages. The
// channel is closed when the run completes. The returned cancel function
// detaches the subscriber. Returns false for unknown or finished runs.
func (r *Registry) Subscribe(id string) (<-chan Message, func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok || state.status != StatusRunning {
		return nil, nil, false
	}

	ch := make(chan Message, 64)
	state.subscribers = append(state.subscribers, ch)

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, sub := range state.subscribers {
			if sub == ch {
				state.subscribers = append(state.subscribers[:i], state.subscribers[i+1:]...)
				return
			}
		}
	}
	return ch, cancel, true
}

// Janitor evicts finished runs older than the retention window until the
// context is cancelled.
func (r *Registry) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evictExpired(time.Now())
		}
	}
}

func (r *Registry) evictExpired(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, state := range r.runs {
		if state.status != StatusRunning && now.Sub(state.completedAt) > r.retention {
			delete(r.runs, id)
		}
	}
}
