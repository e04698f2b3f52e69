package cha

import "testing"

func TestFunctionSetRegisterIsIdempotentAndOrdered(t *testing.T) {
	s := newFunctionSet()
	sel := Selector{Name: "foo", Kind: CallKindCall}
	e1, e2 := elem("foo"), elem("foo")

	s.register(sel, e1, nil)
	s.register(sel, e1, nil)
	s.register(sel, e2, nil)

	got := s.candidates(sel)
	if len(got) != 2 {
		t.Fatalf("candidates = %v, want 2 entries (duplicate registration of e1 ignored)", got)
	}
	if got[0] != Element(e1) || got[1] != Element(e2) {
		t.Errorf("candidates order = %v, want registration order [e1 e2]", got)
	}
}

func TestFunctionSetFilterByOwner(t *testing.T) {
	s := newFunctionSet()
	sel := Selector{Name: "foo", Kind: CallKindCall}
	ownerA := cls("A", nil)
	ownerB := cls("B", nil)
	inA, inB := elem("foo"), elem("foo")

	s.register(sel, inA, ownerA)
	s.register(sel, inB, ownerB)

	got := s.Filter(sel, func(owner Class) bool { return owner == Class(ownerA) })
	if len(got) != 1 || got[0] != Element(inA) {
		t.Errorf("Filter(owner==A) = %v, want [inA]", got)
	}
}

func TestFunctionSetFilterNilAcceptsAll(t *testing.T) {
	s := newFunctionSet()
	sel := Selector{Name: "foo", Kind: CallKindCall}
	a, b := elem("foo"), elem("foo")
	s.register(sel, a, nil)
	s.register(sel, b, nil)

	got := s.Filter(sel, nil)
	if len(got) != 2 {
		t.Errorf("Filter(nil) = %v, want both candidates", got)
	}
}

func TestFunctionSetFirstOwnerWins(t *testing.T) {
	s := newFunctionSet()
	sel := Selector{Name: "foo", Kind: CallKindCall}
	e := elem("foo")
	ownerA := cls("A", nil)
	ownerB := cls("B", nil)

	s.register(sel, e, ownerA)
	s.register(sel, e, ownerB) // duplicate element, different owner argument

	got := s.Filter(sel, func(owner Class) bool { return owner == Class(ownerB) })
	if len(got) != 0 {
		t.Errorf("Filter(owner==B) = %v, want empty (first registration's owner wins)", got)
	}
}

func TestSelectorGetterSetterConstructors(t *testing.T) {
	g := Getter("x")
	if g.Kind != CallKindGetter || g.Name != "x" {
		t.Errorf("Getter(x) = %+v, want Kind=Getter Name=x", g)
	}
	s := Setter("x")
	if s.Kind != CallKindSetter || s.Name != "x" {
		t.Errorf("Setter(x) = %+v, want Kind=Setter Name=x", s)
	}
	if g == s {
		t.Errorf("Getter(x) and Setter(x) must be distinct map keys")
	}
}
