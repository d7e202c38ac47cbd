package email

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	defaultOutboxSize  = 100
	defaultMaxAttempts = 5
)

// PendingMessage is a notification that failed at least once.
type PendingMessage struct {
	Message   Message
	Attempts  int
	LastError string
	QueuedAt  time.Time
}

// Outbox holds failed notifications in memory until the retry job delivers
// them. It is bounded; when full the oldest entry is dropped.
type Outbox struct {
	mu          sync.Mutex
	items       []PendingMessage
	size        int
	maxAttempts int
}

func NewOutbox(size, maxAttempts int) *Outbox {
	if size <= 0 {
		size = defaultOutboxSize
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Outbox{size: size, maxAttempts: maxAttempts}
}

func (o *Outbox) Add(msg Message, cause error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.items) >= o.size {
		dropped := o.items[0]
		o.items = o.items[1:]
		log.Printf("[email] outbox full, dropping %q to %s", dropped.Message.Subject, dropped.Message.To)
	}
	o.items = append(o.items, PendingMessage{
		Message:   msg,
		Attempts:  1,
		LastError: cause.Error(),
		QueuedAt:  time.Now(),
	})
}

func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

// Pending returns a snapshot of the queued messages.
func (o *Outbox) Pending() []PendingMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]PendingMessage(nil), o.items...)
}

// Retry hands every queued message to send. Delivered messages leave the
// queue; a message that has failed maxAttempts times is dropped. The lock is
// not held while sending, so new failures can be queued meanwhile.
func (o *Outbox) Retry(ctx context.Context, send func(context.Context, Message) error) (sent, dropped int) {
	o.mu.Lock()
	batch := o.items
	o.items = nil
	o.mu.Unlock()

	if len(batch) == 0 {
		return 0, 0
	}

	var keep []PendingMessage
	for i, item := range batch {
		if ctx.Err() != nil {
			keep = append(keep, batch[i:]...)
			break
		}

		if err := send(ctx, item.Message); err != nil {
			item.Attempts++
			item.LastError = err.Error()
			if item.Attempts >= o.maxAttempts {
				log.Printf("[email] giving up on %q to %s after %d attempts: %v",
					item.Message.Subject, item.Message.To, item.Attempts, err)
				dropped++
				continue
			}
			keep = append(keep, item)
			continue
		}
		sent++
	}

	o.mu.Lock()
	// entries queued during the run are newer; retried ones go first
	o.items = append(keep, o.items...)
	if over := len(o.items) - o.size; over > 0 {
		o.items = o.items[over:]
		dropped += over
	}
	o.mu.Unlock()

	log.Printf("[email] outbox retry: %d sent, %d dropped, %d pending", sent, dropped, o.Len())
	return sent, dropped
}
