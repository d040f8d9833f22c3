// Package realtime shares one live query per key between every consumer of
// that key. Consumers get full snapshots, never deltas.
package realtime

import (
	"context"
	"sync"
)

// Loader runs the query behind a topic and returns its current full snapshot.
type Loader[T any] func(ctx context.Context) (T, error)

type Hub[T any] struct {
	mu     sync.Mutex
	topics map[string]*topic[T]
}

type topic[T any] struct {
	key  string
	load Loader[T]
	subs map[*Subscription[T]]struct{}

	gen     uint64 // last load started
	applied uint64 // generation of last
	last    T
	loaded  bool
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{topics: map[string]*topic[T]{}}
}

// Acquire joins the topic for key, creating it with load when it is the first
// subscriber. The caller must Release the subscription.
func (h *Hub[T]) Acquire(ctx context.Context, key string, load Loader[T]) (*Subscription[T], error) {
	sub := &Subscription[T]{hub: h, key: key, ch: make(chan T, 1)}

	h.mu.Lock()
	t, ok := h.topics[key]
	if !ok {
		t = &topic[T]{key: key, load: load, subs: map[*Subscription[T]]struct{}{}}
		h.topics[key] = t
	}
	t.subs[sub] = struct{}{}
	if t.loaded {
		sub.push(t.last)
		h.mu.Unlock()
		return sub, nil
	}
	gen := t.begin()
	h.mu.Unlock()

	v, err := t.load(ctx)
	if err != nil {
		sub.Release()
		return nil, err
	}
	h.apply(t, gen, v)
	return sub, nil
}

// Refresh re-runs every active query once and fans the snapshots out. The
// first error is returned after all topics were attempted.
func (h *Hub[T]) Refresh(ctx context.Context) error {
	h.mu.Lock()
	type pending struct {
		t   *topic[T]
		gen uint64
	}
	work := make([]pending, 0, len(h.topics))
	for _, t := range h.topics {
		work = append(work, pending{t: t, gen: t.begin()})
	}
	h.mu.Unlock()

	var first error
	for _, p := range work {
		v, err := p.t.load(ctx)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		h.apply(p.t, p.gen, v)
	}
	return first
}

// Topics is the number of live queries.
func (h *Hub[T]) Topics() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics)
}

// Subscribers is the number of acquired, unreleased subscriptions.
func (h *Hub[T]) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.topics {
		n += len(t.subs)
	}
	return n
}

func (t *topic[T]) begin() uint64 {
	t.gen++
	return t.gen
}

func (h *Hub[T]) apply(t *topic[T], gen uint64, v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[t.key] != t || gen <= t.applied {
		return
	}
	t.applied = gen
	t.last = v
	t.loaded = true
	for sub := range t.subs {
		sub.push(v)
	}
}

func (h *Hub[T]) release(sub *Subscription[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.topics[sub.key]; ok {
		delete(t.subs, sub)
		if len(t.subs) == 0 {
			delete(h.topics, sub.key)
		}
	}
	close(sub.ch)
}

type Subscription[T any] struct {
	hub  *Hub[T]
	key  string
	ch   chan T
	once sync.Once
}

// Updates yields the latest snapshot. Intermediate snapshots a slow consumer
// did not read are dropped. The channel is closed by Release.
func (s *Subscription[T]) Updates() <-chan T { return s.ch }

func (s *Subscription[T]) Key() string { return s.key }

// Release leaves the topic. Safe to call more than once.
func (s *Subscription[T]) Release() {
	s.once.Do(func() { s.hub.release(s) })
}

// push must be called with the hub lock held.
func (s *Subscription[T]) push(v T) {
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}
