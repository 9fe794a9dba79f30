package inject

import (
	"fmt"
	"reflect"

	"github.com/l1jgo/ecscore/internal/core/system"
)

// Receiver is implemented by processes interested in injected values of type T.
type Receiver[T any] interface {
	Receive(v T)
}

// MisuseError reports a node or graph used out of order: injecting before
// Init, initialising twice, registering after Init.
type MisuseError struct {
	Type string
	Op   string
}

func (e MisuseError) Error() string {
	return fmt.Sprintf("injection %s misuse for %s", e.Op, e.Type)
}

// node is the type-erased face of Node and CustomNode kept by a Branch.
type node interface {
	init(reg system.Registry) error
	injectAny(v any)
	subscriberCount() int
}

// Node holds the last value of type T pushed through the graph and the
// processes that receive it.
//
// Subscribers are notified synchronously in registration order. A subscriber
// must not register processes or nodes while being notified.
type Node[T any] struct {
	value       T
	subscribers []Receiver[T]
	initialized bool
}

// Init resolves the Receiver[T] processes of reg once.
func (n *Node[T]) Init(reg system.Registry) error {
	if n.initialized {
		return MisuseError{Type: typeName[T](), Op: "double init"}
	}
	n.subscribers = system.Processes[Receiver[T]](reg)
	n.initialized = true
	return nil
}

// Inject stores v and delivers it to every subscriber. Injecting into a node
// that was never initialised is a programming error and panics.
func (n *Node[T]) Inject(v T) {
	if !n.initialized {
		panic(MisuseError{Type: typeName[T](), Op: "inject before init"})
	}
	n.value = v
	for _, s := range n.subscribers {
		s.Receive(v)
	}
}

// Value returns the last injected value.
func (n *Node[T]) Value() T { return n.value }

// Subscribers returns the resolved receivers in notification order.
func (n *Node[T]) Subscribers() []Receiver[T] { return n.subscribers }

func (n *Node[T]) init(reg system.Registry) error { return n.Init(reg) }
func (n *Node[T]) injectAny(v any)                { n.Inject(v.(T)) }
func (n *Node[T]) subscriberCount() int           { return len(n.subscribers) }

// CustomNode delivers values of type T to processes implementing P through a
// caller supplied adapter, for processes that expect a translated view of T.
type CustomNode[P any, T any] struct {
	value       T
	adapter     func(P, T)
	subscribers []P
	initialized bool
}

func NewCustomNode[P any, T any](adapter func(P, T)) *CustomNode[P, T] {
	return &CustomNode[P, T]{adapter: adapter}
}

func (n *CustomNode[P, T]) Init(reg system.Registry) error {
	if n.initialized {
		return MisuseError{Type: typeName[T](), Op: "double init"}
	}
	n.subscribers = system.Processes[P](reg)
	n.initialized = true
	return nil
}

func (n *CustomNode[P, T]) Inject(v T) {
	if !n.initialized {
		panic(MisuseError{Type: typeName[T](), Op: "inject before init"})
	}
	n.value = v
	for _, s := range n.subscribers {
		n.adapter(s, v)
	}
}

func (n *CustomNode[P, T]) Value() T         { return n.value }
func (n *CustomNode[P, T]) Subscribers() []P { return n.subscribers }

func (n *CustomNode[P, T]) init(reg system.Registry) error { return n.Init(reg) }
func (n *CustomNode[P, T]) injectAny(v any)                { n.Inject(v.(T)) }
func (n *CustomNode[P, T]) subscriberCount() int           { return len(n.subscribers) }

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
