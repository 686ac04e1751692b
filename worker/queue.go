// Package worker implements spec.md §4.D's per-tick worker pool: a fixed
// number of goroutines per worker kind, each pulling index ranges from a
// single-producer/multi-consumer FIFO and signalling a notify FIFO, plus
// the five worker kinds themselves (quantification, condition mean/shape,
// experiment mean/shape, condition splice, experiment splice).
//
// This generalizes the teacher's buffer package (a fixed-capacity circular
// container for one element type) into a generic, buffered-channel
// FIFO suited to the coordinator's tick/notify queues --
// the same single-purpose-container idiom, parameterized instead of typed
// to one element.
package worker

// IdxRange is a half-open index range [First, Last) of work, or the
// sentinel (-1, -1) used to signal shutdown.
type IdxRange struct {
	First, Last int
}

// Sentinel is the terminator range a coordinator pushes to end a worker.
var Sentinel = IdxRange{First: -1, Last: -1}

// IsSentinel reports whether r is the shutdown sentinel.
func (r IdxRange) IsSentinel() bool {
	return r.First == -1
}

// Queue is a FIFO of T backed by a buffered channel of fixed capacity.
// Pop blocks when the queue is empty; Push blocks only when backlog items
// are already waiting, so the queue is not unbounded. The coordinator sizes
// every backlog to hold a full tick's pushes, so its Pushes do not block.
type Queue[T any] struct {
	ch chan T
}

// NewQueue creates a Queue with room for backlog buffered items before Push
// blocks a producer; backlog should comfortably exceed the number of
// ranges queued per tick so Push never contends with Pop under normal load.
func NewQueue[T any](backlog int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, backlog)}
}

// Push enqueues v.
func (q *Queue[T]) Push(v T) {
	q.ch <- v
}

// Pop blocks until an item is available, then returns it.
func (q *Queue[T]) Pop() T {
	return <-q.ch
}
