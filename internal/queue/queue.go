// Package queue provides the single-producer/single-consumer handoff between
// the MIDI driver's callback goroutine and the application's update tick.
package queue

import "sync"

// Queue is an unbounded FIFO. Send never blocks the producer and TryReceive
// never blocks the consumer; once enqueued a message is never dropped and
// ordering is preserved.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Send enqueues v. Safe to call from the driver callback; it only appends
// under a briefly held lock.
func (q *Queue[T]) Send(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// TryReceive dequeues the oldest message, or returns false immediately if
// the queue is empty.
func (q *Queue[T]) TryReceive() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head == len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	// Zero the slot so the dequeued element is collectable right away
	// instead of when the whole backlog drains.
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = nil
		q.head = 0
	}
	return v, true
}

// Len reports the number of queued messages.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
