// Package pubsub provides a typed publish/subscribe registry. Handlers are
// keyed by the concrete type of the published value, mirroring how the
// network router dispatches wire messages, so the same pattern serves both
// in-process delivery and domain event notification.
package pubsub

import (
	"reflect"
	"sync"
)

// Bus dispatches published values to every handler subscribed to the value's
// exact type, in subscription order.
type Bus struct {
	mu   sync.Mutex
	subs map[reflect.Type][]*Subscription
}

func New() *Bus {
	return &Bus{
		subs: make(map[reflect.Type][]*Subscription),
	}
}

// Subscription is the handle returned by Subscribe. Closing it unregisters
// the handler deterministically; handlers are never collected implicitly.
type Subscription struct {
	bus *Bus
	typ reflect.Type
	fn  func(any)
}

// Subscribe registers fn for all published values of type T.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	sub := &Subscription{
		bus: b,
		typ: reflect.TypeOf((*T)(nil)).Elem(),
		fn:  func(v any) { fn(v.(T)) },
	}

	b.mu.Lock()
	b.subs[sub.typ] = append(b.subs[sub.typ], sub)
	b.mu.Unlock()

	return sub
}

// Publish invokes every handler subscribed to msg's concrete type, in the
// order the handlers were registered. Handlers run on the caller's goroutine.
func (b *Bus) Publish(msg any) {
	typ := reflect.TypeOf(msg)

	b.mu.Lock()
	// Copy so handlers can subscribe/unsubscribe mid-dispatch.
	subs := append([]*Subscription(nil), b.subs[typ]...)
	b.mu.Unlock()

	for _, sub := range subs {
		if sub.closed() {
			continue
		}
		sub.fn(msg)
	}
}

func (s *Subscription) closed() bool {
	return s.bus == nil
}

// Close unregisters the subscription. A closed subscription's handler is
// never invoked again, even for a publish already in flight. Safe to call
// more than once.
func (s *Subscription) Close() {
	if s.bus == nil {
		return
	}

	s.bus.mu.Lock()
	subs := s.bus.subs[s.typ]
	for i, sub := range subs {
		if sub == s {
			s.bus.subs[s.typ] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.bus.mu.Unlock()

	s.bus = nil
}
