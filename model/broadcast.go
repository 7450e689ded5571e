package model

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Observer receives events synchronously, in emission order, on the
// goroutine that advanced the machine.
type Observer func(Event)

// Subscription is the handle returned by Machine.Subscribe.
type Subscription struct {
	observer Observer
	active   atomic.Bool
	owner    *broadcaster
}

// Unsubscribe stops delivery. It is safe to call from inside the observer.
func (s *Subscription) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.owner.remove(s)
}

// broadcaster fans events out to every live subscription. There is no
// replay: a subscription only sees events emitted after it was added.
type broadcaster struct {
	mu   sync.Mutex
	subs []*Subscription
}

func (b *broadcaster) add(o Observer) *Subscription {
	s := &Subscription{observer: o, owner: b}
	s.active.Store(true)
	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()
	return s
}

func (b *broadcaster) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = slices.DeleteFunc(b.subs, func(x *Subscription) bool { return x == s })
}

func (b *broadcaster) emit(e Event) {
	b.mu.Lock()
	subs := slices.Clone(b.subs)
	b.mu.Unlock()
	for _, s := range subs {
		if s.active.Load() {
			s.observer(e)
		}
	}
}

func (b *broadcaster) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
