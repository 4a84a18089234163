/*
	queue package provides the binary min-heap used by the shortest path
	engines to order candidate vertices.
*/

package queue

// Item is implemented by values that can be ordered inside a PriorityQueue.
type Item[T any] interface {
	Less(other T) bool
}

// PriorityQueue is a binary min-heap ordered by the Less method of its items.
// It is not safe for concurrent use; every engine worker owns its own queue.
type PriorityQueue[T Item[T]] struct {
	items []T
}

// NewPriorityQueue returns an empty queue with room for capacity items.
func NewPriorityQueue[T Item[T]](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{items: make([]T, 0, capacity)}
}

// Len returns the number of queued items.
func (q *PriorityQueue[T]) Len() int { return len(q.items) }

// Push adds x to the queue in O(log n).
func (q *PriorityQueue[T]) Push(x T) {
	q.items = append(q.items, x)
	q.up(len(q.items) - 1)
}

// Peek returns the minimum item without removing it. The second return value
// is false when the queue is empty.
func (q *PriorityQueue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T

		return zero, false
	}

	return q.items[0], true
}

// Pop removes and returns the minimum item. The second return value is false
// when the queue is empty.
func (q *PriorityQueue[T]) Pop() (T, bool) {
	var zero T

	n := len(q.items) - 1
	if n < 0 {
		return zero, false
	}

	q.items[0], q.items[n] = q.items[n], q.items[0]
	q.down(0, n)

	item := q.items[n]
	// Clear the vacated slot so the backing array does not pin the item.
	q.items[n] = zero
	q.items = q.items[:n]

	return item, true
}

// Reset empties the queue while keeping its allocated capacity.
func (q *PriorityQueue[T]) Reset() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}

	q.items = q.items[:0]
}

func (q *PriorityQueue[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.items[j].Less(q.items[i]) {
			break
		}

		q.items[i], q.items[j] = q.items[j], q.items[i]
		j = i
	}
}

func (q *PriorityQueue[T]) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}

		j := j1
		if j2 := j1 + 1; j2 < n && q.items[j2].Less(q.items[j1]) {
			j = j2
		}

		if !q.items[j].Less(q.items[i]) {
			break
		}

		q.items[i], q.items[j] = q.items[j], q.items[i]
		i = j
	}
}
