// queue.go: Bounded blocking hand-off between producers and the writer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import "sync"

// dispatchQueue is a bounded FIFO with many producers and one consumer.
//
// Enqueue blocks while the queue is full. Once Close starts, Enqueue returns
// false without delivering, including producers already blocked on a full
// queue. The consumer keeps receiving until every accepted item is drained.
type dispatchQueue[T any] struct {
	items   chan T
	closing chan struct{}

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
	once     sync.Once
}

func newDispatchQueue[T any](capacity int) *dispatchQueue[T] {
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}
	return &dispatchQueue[T]{
		items:   make(chan T, capacity),
		closing: make(chan struct{}),
	}
}

// Enqueue hands item to the consumer, waiting for space if needed.
// It reports false when the queue is closed.
func (q *dispatchQueue[T]) Enqueue(item T) bool {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return false
	}
	q.inflight.Add(1)
	q.mu.RUnlock()
	defer q.inflight.Done()

	// Items accepted here are always drained by Close.
	select {
	case q.items <- item:
		return true
	default:
	}

	select {
	case q.items <- item:
		return true
	case <-q.closing:
		return false
	}
}

// Dequeue waits for the next item. ok is false once the queue is closed and empty.
func (q *dispatchQueue[T]) Dequeue() (item T, ok bool) {
	item, ok = <-q.items
	return item, ok
}

// Close stops accepting items, waits for in-flight Enqueue calls to settle
// and closes the channel so the consumer can drain and exit. It does not wait
// for the consumer.
func (q *dispatchQueue[T]) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.closing)
		q.mu.Unlock()

		q.inflight.Wait()
		close(q.items)
	})
}

// Closed reports whether Close has been called.
func (q *dispatchQueue[T]) Closed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Len returns the number of items waiting for the consumer.
func (q *dispatchQueue[T]) Len() int { return len(q.items) }

// Cap returns the queue capacity.
func (q *dispatchQueue[T]) Cap() int { return cap(q.items) }
