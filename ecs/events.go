package ecs

// EventQueue is a simple FIFO queue. Producers push during a frame and a
// single consumer drains once per frame.
type EventQueue[E any] struct {
	items []E
}

// Push adds an event.
func (q *EventQueue[E]) Push(evt E) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue[E]) Drain() []E {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are pending.
func (q *EventQueue[E]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
