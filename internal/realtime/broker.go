package realtime

import (
	"sync"
	"time"
)

// MessageEvent is an inserted messages row as published by the database
// trigger.
type MessageEvent struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

const subscriberBuffer = 16

// Broker fans message-insert events out to stream subscribers.
//
// The subscription is deliberately over-broad: every subscriber receives
// every insert and the consumer filters to its own user (and the open
// conversation pair), mirroring the broad realtime channel the frontend
// always used. Filtering here would be an optimization, not a correctness
// requirement.
type Broker struct {
	mu   sync.Mutex
	subs map[chan MessageEvent]struct{}
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan MessageEvent]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel function. The channel is closed on cancel.
func (b *Broker) Subscribe() (<-chan MessageEvent, func()) {
	ch := make(chan MessageEvent, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Slow subscribers with a
// full buffer miss the event rather than block the listener; the change
// feed is at-least-once only for clients that keep up.
func (b *Broker) Publish(evt MessageEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
