package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r *recorder) Phase() Phase { return r.phase }
func (r *recorder) Update(_ time.Duration) {
	*r.log = append(*r.log, r.name)
}

type namer interface{ Name() string }

type named struct{ recorder }

func (n *named) Name() string { return n.name }

func TestRunnerPhaseOrderIsStable(t *testing.T) {
	var log []string
	r := NewRunner(nil)
	r.Register(&recorder{"cleanup", PhaseCleanup, &log})
	r.Register(&recorder{"update-a", PhaseUpdate, &log})
	r.Register(&recorder{"input", PhaseInput, &log})
	r.Register(&recorder{"update-b", PhaseUpdate, &log})

	r.Tick(time.Millisecond)
	want := []string{"input", "update-a", "update-b", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
	if r.Frame() != 1 {
		t.Fatalf("Frame = %d", r.Frame())
	}
}

func TestRunnerProcessesKeepDeclarationOrder(t *testing.T) {
	var log []string
	r := NewRunner(nil)
	a := &recorder{"a", PhaseCleanup, &log}
	b := &recorder{"b", PhaseInput, &log}
	r.Register(a)
	r.Register(b)
	r.Tick(0)

	procs := r.Processes()
	if len(procs) != 2 || procs[0] != System(a) || procs[1] != System(b) {
		t.Fatalf("Processes = %v", procs)
	}
}

func TestRunnerTickPhase(t *testing.T) {
	var log []string
	r := NewRunner(nil)
	r.Register(&recorder{"u", PhaseUpdate, &log})
	r.Register(&recorder{"o", PhaseOutput, &log})
	r.TickPhase(PhaseOutput, 0)
	if len(log) != 1 || log[0] != "o" {
		t.Fatalf("ran %v", log)
	}
	if r.Frame() != 0 {
		t.Fatal("TickPhase advanced the frame")
	}
}

func TestProcessesFiltersByCapability(t *testing.T) {
	var log []string
	r := NewRunner(nil)
	r.Register(&named{recorder{"x", PhaseUpdate, &log}})
	r.Register(&recorder{"plain", PhaseUpdate, &log})
	r.Register(&named{recorder{"y", PhaseInput, &log}})

	got := Processes[namer](r)
	if len(got) != 2 || got[0].Name() != "x" || got[1].Name() != "y" {
		t.Fatalf("Processes[namer] = %v", got)
	}

	type nobody interface{ Nothing() }
	if n := len(Processes[nobody](r)); n != 0 {
		t.Fatalf("unimplemented capability matched %d processes", n)
	}
}

func TestRunnerIDsAreUnique(t *testing.T) {
	a, b := NewRunner(nil), NewRunner(nil)
	if a.ID() == b.ID() {
		t.Fatal("two runners share an id")
	}
}

func TestParsePhase(t *testing.T) {
	for p := PhaseInput; p <= PhaseCleanup; p++ {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePhase("later"); ok {
		t.Error("ParsePhase accepted unknown name")
	}
}
