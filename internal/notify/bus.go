package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"bookbazaar/pkg/domain"
)

// Bus is an ephemeral, fire-and-forget queue of transient user feedback.
// It is injected explicitly into whatever publishes; there is no package-level
// ambient instance. Publish never blocks: when the buffer is full the oldest
// message is dropped so feedback stays fresh.
type Bus struct {
	mu sync.Mutex
	ch chan domain.Notification
}

// New builds a bus with the given buffer size (16 when <= 0).
func New(size int) *Bus {
	if size <= 0 {
		size = 16
	}
	return &Bus{ch: make(chan domain.Notification, size)}
}

// Publish enqueues a notification.
func (b *Bus) Publish(level domain.NotificationLevel, message string) {
	n := domain.Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		select {
		case b.ch <- n:
			return
		default:
		}
		select {
		case <-b.ch:
		default:
		}
	}
}

// Info publishes an informational message.
func (b *Bus) Info(message string) { b.Publish(domain.LevelInfo, message) }

// Success publishes a success message.
func (b *Bus) Success(message string) { b.Publish(domain.LevelSuccess, message) }

// Error publishes a recoverable-failure message.
func (b *Bus) Error(message string) { b.Publish(domain.LevelError, message) }

// C exposes the receive side for a rendering layer that consumes as it goes.
func (b *Bus) C() <-chan domain.Notification {
	return b.ch
}

// Drain returns everything currently buffered, oldest first.
func (b *Bus) Drain() []domain.Notification {
	var out []domain.Notification
	for {
		select {
		case n := <-b.ch:
			out = append(out, n)
		default:
			return out
		}
	}
}
