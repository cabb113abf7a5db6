package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(time.Hour)
	r.Create("job-1")

	status, ok := r.Status("job-1")
	require.True(t, ok)
	assert.Equal(t, StatusRunning, status)

	r.Append("job-1", Message{Level: "INFO", Message: "first"})
	r.Append("job-1", Message{Level: "ERROR", Message: "second"})

	msgs := r.Drain("job-1")
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Message)
	assert.Equal(t, "second", msgs[1].Message)

	// Drain clears the buffer.
	assert.Empty(t, r.Drain("job-1"))

	r.Complete("job-1", StatusCompleted)
	status, ok = r.Status("job-1")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, status)
}

func TestRegistryUnknownRun(t *testing.T) {
	r := NewRegistry(time.Hour)

	_, ok := r.Status("missing")
	assert.False(t, ok)
	assert.Nil(t, r.Drain("missing"))

	// Appending to an unknown run is a no-op, not a panic.
	r.Append("missing", Message{Message: "dropped"})
	r.Complete("missing", StatusFailed)
}

func TestRegistrySubscribe(t *testing.T) {
	r := NewRegistry(time.Hour)
	r.Create("job-1")

	events, cancel, ok := r.Subscribe("job-1")
	require.True(t, ok)
	defer cancel()

	r.Append("job-1", Message{Message: "live"})

	select {
	case msg := <-events:
		assert.Equal(t, "live", msg.Message)
	case <-time.After(time.Second):
		t.Fatal("expected a streamed message")
	}

	r.Complete("job-1", StatusCompleted)
	_, open := <-events
	assert.False(t, open, "channel closes on completion")
}

func TestRegistrySubscribeFinishedRun(t *testing.T) {
	r := NewRegistry(time.Hour)
	r.Create("job-1")
	r.Complete("job-1", StatusFailed)

	_, _, ok := r.Subscribe("job-1")
	assert.False(t, ok)
}

func TestRegistryEviction(t *testing.T) {
	r := NewRegistry(10 * time.Minute)
	r.Create("old")
	r.Create("fresh")
	r.Create("active")

	r.Complete("old", StatusCompleted)
	r.Complete("fresh", StatusCompleted)

	// Age the old run past the retention window.
	r.mu.Lock()
	r.runs["old"].completedAt = time.Now().Add(-time.Hour)
	r.mu.Unlock()

	r.evictExpired(time.Now())

	_, ok := r.Status("old")
	assert.False(t, ok, "expired run is evicted")
	_, ok = r.Status("fresh")
	assert.True(t, ok, "recent run is kept")
	_, ok = r.Status("active")
	assert.True(t, ok, "running run is never evicted")
}
