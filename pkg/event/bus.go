package event

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Handler receives published events. A handler that panics is logged
// and does not affect other subscribers or the publisher.
type Handler func(*Event)

// Bus is a minimal in-process publish/subscribe hub keyed by event Kind.
type Bus struct {
	mu   sync.RWMutex
	subs map[Kind]map[string]Handler
}

func NewBus() *Bus {
	return &Bus{subs: map[Kind]map[string]Handler{}}
}

// Subscribe registers fn for events of the given kind and returns a
// token that can be passed to Unsubscribe.
func (b *Bus) Subscribe(kind Kind, fn Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	token := uuid.NewString()
	byToken, ok := b.subs[kind]
	if !ok {
		byToken = map[string]Handler{}
		b.subs[kind] = byToken
	}
	byToken[token] = fn
	return token
}

// Unsubscribe removes the subscription with the given token.
// Unknown tokens are ignored.
func (b *Bus) Unsubscribe(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, byToken := range b.subs {
		delete(byToken, token)
	}
}

// Publish delivers evt to every subscriber of its kind, in the calling
// goroutine. Delivery order between subscribers is not defined.
func (b *Bus) Publish(evt *Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[evt.Kind]))
	for _, fn := range b.subs[evt.Kind] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		b.deliver(fn, evt)
	}
}

func (b *Bus) deliver(fn Handler, evt *Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("[Bus] subscriber panic on", evt.Kind, ":", r)
		}
	}()
	fn(evt)
}
