// Package feed is the handoff between the acquisition loop and whoever
// presents its snapshots. The queue is unbounded so the producer never
// blocks, and the consumer is expected to drain it and keep the newest item.
package feed

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send once the consumer has closed the queue.
var ErrClosed = errors.New("feed: consumer closed")

// Queue is an unbounded FIFO with a single producer and a single consumer.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	ready  chan struct{} // holds at most one pending wake-up
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1)}
}

// Send appends v without blocking.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
		// consumer already has a wake-up pending
	}
	return nil
}

// Ready fires after one or more Sends. A single signal may cover several items.
func (q *Queue[T]) Ready() <-chan struct{} { return q.ready }

// TryRecv pops the oldest item.
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// Latest drains everything queued and returns only the newest item.
func (q *Queue[T]) Latest() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[len(q.items)-1]
	q.items = nil
	return v, true
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close is called by the consumer. Pending items are dropped and every later
// Send returns ErrClosed, which tells the producer to stop.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
}

func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
