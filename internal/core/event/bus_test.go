package event

import "testing"

type ping struct{ N int }
type pong struct{ N int }

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(e ping) { got = append(got, e.N) })

	Emit(b, ping{1})
	Emit(b, ping{2})
	if n := b.DispatchAll(); n != 0 || len(got) != 0 {
		t.Fatalf("events visible before swap: n=%d got=%v", n, got)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 2 {
		t.Fatalf("DispatchAll = %d", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 0 {
		t.Fatalf("events delivered twice: %d", n)
	}
}

func TestBusEmitDuringDispatchWaitsOneTick(t *testing.T) {
	b := NewBus()
	var pongs int
	Subscribe(b, func(e ping) { Emit(b, pong{e.N}) })
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, ping{1})
	b.SwapBuffers()
	b.DispatchAll()
	if pongs != 0 {
		t.Fatal("pong delivered in the tick it was emitted")
	}
	b.SwapBuffers()
	b.DispatchAll()
	if pongs != 1 {
		t.Fatalf("pongs = %d", pongs)
	}
}

func TestBusMultipleHandlers(t *testing.T) {
	b := NewBus()
	var a, c int
	Subscribe(b, func(ping) { a++ })
	Subscribe(b, func(ping) { c++ })
	Emit(b, ping{})
	b.SwapBuffers()
	b.DispatchAll()
	if a != 1 || c != 1 {
		t.Fatalf("a=%d c=%d", a, c)
	}
}
