package ecs

// SizedQueue is a bounded FIFO queue that drops its oldest item when full.
// The scheduler uses one to keep a rolling history of frame durations.
type SizedQueue[T any] struct {
	items []T
	head  int
	count int
}

// NewSizedQueue creates a queue holding at most size items.
func NewSizedQueue[T any](size int) *SizedQueue[T] {
	if size < 1 {
		size = 1
	}
	return &SizedQueue[T]{items: make([]T, size)}
}

// Push appends an item, returning the dropped oldest item when the queue was
// full.
func (q *SizedQueue[T]) Push(item T) (dropped T, wasFull bool) {
	if q.count == len(q.items) {
		dropped = q.items[q.head]
		q.items[q.head] = item
		q.head = (q.head + 1) % len(q.items)
		return dropped, true
	}
	q.items[(q.head+q.count)%len(q.items)] = item
	q.count++
	return dropped, false
}

// Oldest returns the oldest item, or false if the queue is empty.
func (q *SizedQueue[T]) Oldest() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	return q.items[q.head], true
}

// Newest returns the most recently pushed item, or false if the queue is
// empty.
func (q *SizedQueue[T]) Newest() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	return q.items[(q.head+q.count-1)%len(q.items)], true
}

// Len returns how many items are stored.
func (q *SizedQueue[T]) Len() int {
	return q.count
}

// Size returns the queue's capacity.
func (q *SizedQueue[T]) Size() int {
	return len(q.items)
}

// Items returns the stored items from oldest to newest.
func (q *SizedQueue[T]) Items() []T {
	out := make([]T, q.count)
	for i := 0; i < q.count; i++ {
		out[i] = q.items[(q.head+i)%len(q.items)]
	}
	return out
}
