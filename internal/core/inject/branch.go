package inject

import "slices"

// Injector accepts objects to broadcast through a graph.
type Injector interface {
	Inject(obj any)
}

// SelfInjectable is implemented by objects that carry further dependencies of
// their own. InjectSelf runs once per injection, after every node of the
// object's type has fired.
type SelfInjectable interface {
	InjectSelf(inj Injector)
}

// Branch groups the nodes registered for one concrete runtime type, so a
// default node and any number of custom adapters fire together.
type Branch struct {
	nodes    []node
	injector Injector
}

func newBranch(inj Injector) *Branch {
	return &Branch{injector: inj}
}

// add appends a node. The node list only grows during setup.
func (b *Branch) add(n node) {
	b.nodes = append(b.nodes, n)
}

// Trim releases spare node capacity. Call it once setup has completed, never
// while an injection is running.
func (b *Branch) Trim() {
	b.nodes = slices.Clip(b.nodes)
}

// Inject fires every node with obj, then obj's own injection hook.
func (b *Branch) Inject(obj any) {
	for _, n := range b.nodes {
		n.injectAny(obj)
	}
	if si, ok := obj.(SelfInjectable); ok {
		si.InjectSelf(b.injector)
	}
}

// Len is the number of nodes registered for the branch's type.
func (b *Branch) Len() int { return len(b.nodes) }
