package dispatch

import "sync"

// Queue is an unbounded FIFO. Push never blocks, so it is safe to call from
// the key listener goroutine.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	ready chan struct{}
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1)}
}

// Push appends v and signals Ready.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value after one or more Pushes. Drain after every receive.
func (q *Queue[T]) Ready() <-chan struct{} { return q.ready }

// Drain removes and returns every pending item in push order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
