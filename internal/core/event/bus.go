package event

import "reflect"

// Bus is a double-buffered event bus. Events emitted in tick N are readable
// in tick N+1. SwapBuffers() is called at tick start by EventDispatchSystem.
// Each event type has its own typed queue, so dispatch never goes through
// reflection; the reflect.Type is only a map key.
type Bus struct {
	queues map[reflect.Type]queue
	order  []reflect.Type
}

type queue interface {
	swap()
	dispatch() int
}

type typedQueue[T any] struct {
	front    []T
	back     []T
	handlers []func(T)
}

func (q *typedQueue[T]) swap() {
	q.front, q.back = q.back, q.front[:0]
}

func (q *typedQueue[T]) dispatch() int {
	for _, ev := range q.front {
		for _, h := range q.handlers {
			h(ev)
		}
	}
	return len(q.front)
}

func NewBus() *Bus {
	return &Bus{queues: make(map[reflect.Type]queue)}
}

func queueFor[T any](b *Bus) *typedQueue[T] {
	t := reflect.TypeFor[T]()
	if q, ok := b.queues[t]; ok {
		return q.(*typedQueue[T])
	}
	q := &typedQueue[T]{}
	b.queues[t] = q
	b.order = append(b.order, t)
	return q
}

// Emit queues an event into the back buffer (will be readable next tick).
func Emit[T any](b *Bus, event T) {
	q := queueFor[T](b)
	q.back = append(q.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	q := queueFor[T](b)
	q.handlers = append(q.handlers, fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	for _, t := range b.order {
		b.queues[t].swap()
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers,
// event types in first-seen order, and returns the number of events delivered.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, t := range b.order {
		n += b.queues[t].dispatch()
	}
	return n
}
