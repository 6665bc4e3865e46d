package event

import (
	"slices"
	"sync"
)

// Handler consumes one event.
type Handler func(Event)

// subscription pairs a handler with the kind it listens to. A nil kind means
// the handler observes every event.
type subscription struct {
	id   int
	kind *Kind
	fn   Handler
}

// Bus is a synchronous publish/subscribe registry. Emit runs every matching
// handler on the calling goroutine, in overall registration order, before
// returning. Multiple subscribers per kind are supported.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for one event kind and returns a function
// that removes it again.
func (b *Bus) Subscribe(kind Kind, fn Handler) (cancel func()) {
	return b.add(&kind, fn)
}

// SubscribeAll registers a catch-all handler receiving every event,
// typically for logging.
func (b *Bus) SubscribeAll(fn Handler) (cancel func()) {
	return b.add(nil, fn)
}

func (b *Bus) add(kind *Kind, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, kind: kind, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool {
			return s.id == id
		})
	}
}

// Emit delivers ev to every subscriber of its kind and to every catch-all
// subscriber, synchronously and in registration order.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == nil || *s.kind == ev.Kind() {
			matched = append(matched, s.fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range matched {
		fn(ev)
	}
}

// Reset removes every subscription.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
}
