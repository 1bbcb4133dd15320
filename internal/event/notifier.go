// Package event provides synchronous change notification: a registry of
// subscriber callbacks invoked in registration order after every
// state-affecting operation.
package event

import (
	"errors"
	"sync"
)

// Errors returned by the notifier.
var (
	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidTopic is returned when a topic is empty.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrSubscriptionNotFound is returned when cancelling an unknown
	// subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Topic names an event stream.
type Topic string

// Topics published by the editor core.
const (
	// TopicChange fires after every tree or caret mutation.
	TopicChange Topic = "editor.change"

	// TopicFocusRequest fires when the caret asks the host to reclaim
	// input focus.
	TopicFocusRequest Topic = "editor.focus-request"
)

// Event is a published occurrence with an optional payload.
type Event struct {
	Topic   Topic
	Payload any
}

// HandlerFunc handles a published event. Handlers run synchronously on
// the publishing goroutine and must be idempotent.
type HandlerFunc func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	id    uint64
	topic Topic
}

// Topic returns the topic the subscription listens on.
func (s Subscription) Topic() Topic { return s.topic }

type entry struct {
	id      uint64
	handler HandlerFunc
}

// Notifier fans events out to subscribers synchronously, in registration
// order. Delivery ordering across distinct topics is not defined.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]entry
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[Topic][]entry)}
}

// Subscribe registers a handler for a topic.
func (n *Notifier) Subscribe(topic Topic, fn HandlerFunc) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilHandler
	}
	if topic == "" {
		return Subscription{}, ErrInvalidTopic
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.subs[topic] = append(n.subs[topic], entry{id: n.nextID, handler: fn})
	return Subscription{id: n.nextID, topic: topic}, nil
}

// Unsubscribe removes a previously registered handler.
func (n *Notifier) Unsubscribe(sub Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	entries := n.subs[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			n.subs[sub.topic] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers the event to every subscriber of its topic, in
// registration order, on the calling goroutine.
func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	entries := make([]entry, len(n.subs[ev.Topic]))
	copy(entries, n.subs[ev.Topic])
	n.mu.Unlock()

	for _, e := range entries {
		e.handler(ev)
	}
}
