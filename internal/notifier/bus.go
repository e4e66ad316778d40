// Package notifier implements the in-process fan-out for table change
// signals. A signal names a table and nothing else; subscribers react by
// re-reading whatever state they care about. Delivery is at-least-once:
// repeated signals for the same table may be coalesced while a subscriber
// is slow, but a subscriber with a pending signal always wakes.
package notifier

import (
	"context"
	"errors"
	"sync"
)

// ErrSubscriptionClosed is returned from Next after the subscription or the
// bus has been closed.
var ErrSubscriptionClosed = errors.New("subscription is closed")

// Change is one table change signal. It carries no row content.
type Change struct {
	Table string
}

// Bus fans table change signals out to subscribers. The zero value is not
// usable; create one with NewBus. Publish never blocks on subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a subscriber for the given tables. With no tables the
// subscriber receives signals for every table. The caller must Close the
// subscription when done.
func (b *Bus) Subscribe(tables ...string) *Subscription {
	sub := &Subscription{
		bus:     b,
		pending: make(map[string]struct{}),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	if len(tables) > 0 {
		sub.tables = make(map[string]struct{}, len(tables))
		for _, table := range tables {
			sub.tables[table] = struct{}{}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.shutdown()
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish signals that a row in the given table changed. Implements
// ports.ChangePublisher. Signals for tables nobody subscribed to are
// dropped.
func (b *Bus) Publish(table string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		sub.publish(table)
	}
}

// Close shuts the bus down and closes every remaining subscription.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.shutdown()
		delete(b.subs, sub)
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		sub.shutdown()
		delete(b.subs, sub)
	}
}

// Subscription is one subscriber's view of the bus. Signals accumulate as a
// per-table pending set, so a burst of writes to one table wakes the
// subscriber once per drain rather than once per write.
type Subscription struct {
	bus    *Bus
	tables map[string]struct{} // nil means all tables

	mu      sync.Mutex
	pending map[string]struct{}
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// Next blocks until a change signal is available and returns it. Pending
// signals are drained in no particular order. Returns ctx.Err if the
// context ends first, or ErrSubscriptionClosed after Close.
func (s *Subscription) Next(ctx context.Context) (Change, error) {
	for {
		s.mu.Lock()
		for table := range s.pending {
			delete(s.pending, table)
			s.mu.Unlock()
			return Change{Table: table}, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return Change{}, ErrSubscriptionClosed
		}

		select {
		case <-ctx.Done():
			return Change{}, ctx.Err()
		case <-s.wake:
		case <-s.done:
		}
	}
}

// Close removes the subscription from the bus. Pending signals are still
// drained by subsequent Next calls before ErrSubscriptionClosed is
// returned.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}

func (s *Subscription) publish(table string) {
	if s.tables != nil {
		if _, ok := s.tables[table]; !ok {
			return
		}
	}

	s.mu.Lock()
	s.pending[table] = struct{}{}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) shutdown() {
	s.mu.Lock()
	alreadyClosed := s.closed
	s.closed = true
	s.mu.Unlock()
	if !alreadyClosed {
		close(s.done)
	}
}
