package ecs

import "testing"

func TestGetOrDeclareMember(t *testing.T) {
	ResetMembers()
	t.Cleanup(ResetMembers)

	a := GetOrDeclareMember("position")
	b := GetOrDeclareMember("velocity")
	if a == 0 || b == 0 {
		t.Fatal("zero member id issued")
	}
	if a == b {
		t.Fatal("distinct names share an id")
	}
	if GetOrDeclareMember("position") != a {
		t.Fatal("redeclaration changed id")
	}
	info, ok := LookupMember(b)
	if !ok || info.Name != "velocity" || info.ID != b {
		t.Fatalf("LookupMember = %+v, %v", info, ok)
	}
	if _, ok := LookupMember(0); ok {
		t.Fatal("LookupMember(0) succeeded")
	}
	if _, ok := LookupMember(99); ok {
		t.Fatal("LookupMember of undeclared id succeeded")
	}
}

func TestField(t *testing.T) {
	ResetMembers()
	t.Cleanup(ResetMembers)

	w := newTestWorld(t, 4)
	hp := NewField[health](w, "hp")
	same := NewField[health](w, "hp")
	if hp.Member() != same.Member() || hp.Pool() != same.Pool() {
		t.Fatal("fields for one name differ")
	}

	id := w.NewEntity()
	if err := hp.Add(id, health{HP: 2}); err != nil {
		t.Fatal(err)
	}
	if !same.Has(id) {
		t.Fatal("field views disagree")
	}
	if err := hp.Set(id, health{HP: 8}); err != nil {
		t.Fatal(err)
	}
	if h, err := same.Get(id); err != nil || h.HP != 8 {
		t.Fatalf("Get = %+v, %v", h, err)
	}
	if err := hp.Del(id); err != nil {
		t.Fatal(err)
	}
	if hp.Has(id) {
		t.Fatal("Has after Del")
	}
}
