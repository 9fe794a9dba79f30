package inject

import (
	"reflect"

	"github.com/l1jgo/ecscore/internal/core/system"
	"go.uber.org/zap"
)

// Graph routes injected objects to the branch of their exact runtime type.
// Nodes are declared with Register and RegisterCustom, resolved once by Init,
// and from then on Inject only does a map lookup and a loop over cached
// subscribers. A Graph belongs to one pipeline and is driven by one goroutine.
type Graph struct {
	branches    map[reflect.Type]*Branch
	order       []reflect.Type
	initialized bool
	log         *zap.Logger
}

var _ Injector = (*Graph)(nil)

func NewGraph(log *zap.Logger) *Graph {
	if log == nil {
		log = zap.NewNop()
	}
	return &Graph{
		branches: make(map[reflect.Type]*Branch),
		log:      log,
	}
}

// Register declares a default node for T and returns it. T must be the
// concrete type later passed to Inject.
func Register[T any](g *Graph) (*Node[T], error) {
	n := &Node[T]{}
	if err := g.add(reflect.TypeFor[T](), n); err != nil {
		return nil, err
	}
	return n, nil
}

// RegisterCustom declares an adapter node delivering T to processes implementing P.
func RegisterCustom[P any, T any](g *Graph, adapter func(P, T)) (*CustomNode[P, T], error) {
	n := NewCustomNode(adapter)
	if err := g.add(reflect.TypeFor[T](), n); err != nil {
		return nil, err
	}
	return n, nil
}

func (g *Graph) add(t reflect.Type, n node) error {
	if g.initialized {
		return MisuseError{Type: t.String(), Op: "register after init"}
	}
	if t.Kind() == reflect.Interface {
		return MisuseError{Type: t.String(), Op: "register interface type"}
	}
	b, ok := g.branches[t]
	if !ok {
		b = newBranch(g)
		g.branches[t] = b
		g.order = append(g.order, t)
	}
	b.add(n)
	return nil
}

// Init resolves the subscribers of every node from reg and compacts the
// branches. It runs once; a second call is a MisuseError.
func (g *Graph) Init(reg system.Registry) error {
	if g.initialized {
		return MisuseError{Type: "graph", Op: "double init"}
	}
	for _, t := range g.order {
		b := g.branches[t]
		subscribers := 0
		for _, n := range b.nodes {
			if err := n.init(reg); err != nil {
				return err
			}
			subscribers += n.subscriberCount()
		}
		b.Trim()
		g.log.Debug("injection branch ready",
			zap.Stringer("type", t),
			zap.Int("nodes", b.Len()),
			zap.Int("subscribers", subscribers),
		)
	}
	g.initialized = true
	return nil
}

// Inject broadcasts obj to the branch of its runtime type. Objects of an
// undeclared type reach no subscriber but still get their InjectSelf hook.
// Injecting before Init panics with a MisuseError.
func (g *Graph) Inject(obj any) {
	if !g.initialized {
		panic(MisuseError{Type: "graph", Op: "inject before init"})
	}
	if obj == nil {
		return
	}
	if b, ok := g.branches[reflect.TypeOf(obj)]; ok {
		b.Inject(obj)
		return
	}
	if si, ok := obj.(SelfInjectable); ok {
		si.InjectSelf(g)
	}
}

// Branch returns the branch declared for t.
func (g *Graph) Branch(t reflect.Type) (*Branch, bool) {
	b, ok := g.branches[t]
	return b, ok
}

// Types returns the declared types in declaration order.
func (g *Graph) Types() []reflect.Type { return g.order }
