package system

import (
	"testing"
	"time"

	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/event"
	"github.com/l1jgo/ecscore/internal/core/inject"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"go.uber.org/zap/zaptest"
)

func newWorld(t *testing.T) *ecs.World {
	t.Helper()
	w, err := ecs.NewWorld(0, ecs.Config{EntitiesCapacity: 8, Checked: true}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestMovementIntegratesAndClamps(t *testing.T) {
	w := newWorld(t)
	pos := ecs.GetPool[Position](w)
	vel := ecs.GetPool[Velocity](w)

	moving := w.NewEntity()
	pos.Add(moving.Slot(), Position{X: 5, Y: 5})
	vel.Add(moving.Slot(), Velocity{X: 2, Y: -4})

	still := w.NewEntity()
	pos.Add(still.Slot(), Position{X: 1, Y: 1})

	ghost := w.NewEntity()
	vel.Add(ghost.Slot(), Velocity{X: 1})

	m := NewMovementSystem(w)
	m.Receive(&TickContext{Scale: 2})
	m.ReceiveBounds(&Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	m.Update(time.Second)

	p, _ := pos.Get(moving.Slot())
	if p.X != 9 || p.Y != 0 {
		t.Fatalf("moving = %+v, want {9 0}", *p)
	}
	if q, _ := pos.Get(still.Slot()); q.X != 1 || q.Y != 1 {
		t.Fatalf("still moved: %+v", *q)
	}
	if pos.Has(ghost.Slot()) {
		t.Fatal("movement created a position")
	}
}

func TestLifetimeQueuesExpired(t *testing.T) {
	w := newWorld(t)
	life := ecs.GetPool[Lifetime](w)
	short := w.NewEntity()
	long := w.NewEntity()
	life.Add(short.Slot(), Lifetime{Ticks: 1})
	life.Add(long.Slot(), Lifetime{Ticks: 3})

	bus := event.NewBus()
	var destroyed []ecs.EntityID
	event.Subscribe(bus, func(e event.EntityDestroyed) { destroyed = append(destroyed, e.ID) })

	r := coresys.NewRunner(nil)
	r.Register(NewCleanupSystem(w, bus, zaptest.NewLogger(t)))
	r.Register(NewLifetimeSystem(w))
	dispatch := NewEventDispatchSystem(bus)
	r.Register(dispatch)

	r.Tick(time.Millisecond)
	if w.Alive(short) || !w.Alive(long) {
		t.Fatal("wrong entity destroyed after first tick")
	}
	if len(destroyed) != 0 {
		t.Fatal("destruction announced in the same tick")
	}

	r.Tick(time.Millisecond)
	if len(destroyed) != 1 || destroyed[0] != short {
		t.Fatalf("destroyed = %v", destroyed)
	}
	if dispatch.Delivered() != 1 {
		t.Fatalf("Delivered = %d", dispatch.Delivered())
	}
	if l, _ := life.Get(long.Slot()); l.Ticks != 1 {
		t.Fatalf("long lifetime = %d", l.Ticks)
	}
}

func TestTickContextInjectsBounds(t *testing.T) {
	w := newWorld(t)
	m := NewMovementSystem(w)
	r := coresys.NewRunner(nil)
	r.Register(m)

	g := inject.NewGraph(nil)
	if _, err := inject.Register[*TickContext](g); err != nil {
		t.Fatal(err)
	}
	if _, err := inject.RegisterCustom[BoundsReceiver, *Bounds](g, DeliverBounds); err != nil {
		t.Fatal(err)
	}
	if err := g.Init(r); err != nil {
		t.Fatal(err)
	}

	b := &Bounds{MaxX: 10, MaxY: 10}
	ctx := &TickContext{Frame: 1, Scale: 1, Bounds: b}
	g.Inject(ctx)
	if m.ctx != ctx || m.bounds != b {
		t.Fatal("movement did not receive context and bounds")
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	p := Position{X: 5, Y: -5}
	b.Clamp(&p)
	if p.X != 1 || p.Y != -1 {
		t.Fatalf("clamped to %+v", p)
	}
}
