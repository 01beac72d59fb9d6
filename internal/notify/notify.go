// Package notify buffers transient user-facing notifications ("toasts").
// Producers report an event once; the UI drains pending notifications and
// each is delivered exactly once.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is a single transient message for the UI.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Buffer is an in-memory notification queue. Oldest entries are dropped once
// the buffer exceeds its capacity, so a disconnected UI can't grow it
// unboundedly.
type Buffer struct {
	mu      sync.Mutex
	pending []Notification
	cap     int
}

// NewBuffer creates a Buffer holding at most capacity pending notifications.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 64
	}
	return &Buffer{cap: capacity}
}

// Notify enqueues a message.
func (b *Buffer) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if len(b.pending) > b.cap {
		b.pending = b.pending[len(b.pending)-b.cap:]
	}
}

// Drain returns all pending notifications and clears the buffer.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
