package cha

import "testing"

func TestSideEffectsUnionIsMonotone(t *testing.T) {
	s := ChangesInstanceProperty
	s = s.Union(ChangesStaticProperty)
	if s&ChangesInstanceProperty == 0 || s&ChangesStaticProperty == 0 {
		t.Errorf("Union dropped a bit: %v", s)
	}
	if s.IsEmpty() {
		t.Errorf("IsEmpty() = true after union, want false")
	}
}

func TestSideEffectsStringFormatting(t *testing.T) {
	if got := EmptySideEffects.String(); got != "none" {
		t.Errorf("EmptySideEffects.String() = %q, want %q", got, "none")
	}
	if got := AllSideEffects.String(); got != "all" {
		t.Errorf("AllSideEffects.String() = %q, want %q", got, "all")
	}
	if got := ChangesIndex.String(); got != "changesIndex" {
		t.Errorf("ChangesIndex.String() = %q, want %q", got, "changesIndex")
	}
}

func TestRegisterSideEffectsFreeIsSticky(t *testing.T) {
	w := newTestWorld(cls("Object", nil), nil, &testResolverWorld{}, testCompilerOptions{}, &testReporter{})
	e := elem("f")

	w.effects.RegisterSideEffectsFree(e)
	w.effects.RegisterSideEffects(e, AllSideEffects)
	if got := w.effects.GetSideEffectsOfElement(e); got != EmptySideEffects {
		t.Errorf("GetSideEffectsOfElement after free+register = %v, want empty", got)
	}
}

func TestGetSideEffectsOfElementDefaultsToEmpty(t *testing.T) {
	w := newTestWorld(cls("Object", nil), nil, &testResolverWorld{}, testCompilerOptions{}, &testReporter{})
	e := elem("unseen")
	if got := w.effects.GetSideEffectsOfElement(e); got != EmptySideEffects {
		t.Errorf("GetSideEffectsOfElement(unseen) = %v, want empty default", got)
	}
}

func TestGetSideEffectsOfElementRejectsFieldsAndCtorBodies(t *testing.T) {
	reporter := &testReporter{}
	w := newTestWorld(cls("Object", nil), nil, &testResolverWorld{}, testCompilerOptions{}, reporter)

	field := &testElement{name: "f", instance: true, field: true}
	if got := w.effects.GetSideEffectsOfElement(field); got != AllSideEffects {
		t.Errorf("GetSideEffectsOfElement(field) = %v, want AllSideEffects (defensive)", got)
	}
	if len(reporter.errors) == 0 {
		t.Errorf("expected an internal error to be reported for a field argument")
	}

	reporter.errors = nil
	ctorBody := &testElement{name: "init", instance: true, ctorBody: true}
	w.effects.GetSideEffectsOfElement(ctorBody)
	if len(reporter.errors) == 0 {
		t.Errorf("expected an internal error to be reported for a constructor-body argument")
	}
}

func TestFieldNeverChangesCases(t *testing.T) {
	object := cls("Object", nil)
	final := &testElement{name: "f1", instance: true, field: true, final: true}
	plain := &testElement{name: "f2", instance: true, field: true}
	native := &testElement{name: "f3", instance: true, field: true}
	setterSeen := &testElement{name: "f4", instance: true, field: true}

	resolver := &testResolverWorld{
		invokedSetter: map[Element]bool{setterSeen: true},
	}
	w := NewWorld(
		WithCoreClasses(testCoreClasses{object: object}),
		WithBackend(testBackend{native: map[Element]bool{native: true}}),
		WithResolverWorld(resolver),
		WithCompilerOptions(testCompilerOptions{}),
		WithReporter(&testReporter{}),
	)

	if !w.effects.fieldNeverChanges(final) {
		t.Errorf("fieldNeverChanges(final) = false, want true")
	}
	if !w.effects.fieldNeverChanges(plain) {
		t.Errorf("fieldNeverChanges(plain, no setter observed) = false, want true")
	}
	if w.effects.fieldNeverChanges(native) {
		t.Errorf("fieldNeverChanges(native) = true, want false")
	}
	if w.effects.fieldNeverChanges(setterSeen) {
		t.Errorf("fieldNeverChanges(setter observed) = true, want false")
	}

	nonField := elem("m")
	if w.effects.fieldNeverChanges(nonField) {
		t.Errorf("fieldNeverChanges(non-field) = true, want false")
	}
}

func TestGetSideEffectsOfSelectorClosureCallIsAlwaysEmpty(t *testing.T) {
	w := newTestWorld(cls("Object", nil), nil, &testResolverWorld{}, testCompilerOptions{}, &testReporter{})
	sel := Selector{Name: "call", Kind: CallKindClosureCall}
	if got := w.effects.getSideEffectsOfSelector(sel, testMask{}); got != EmptySideEffects {
		t.Errorf("getSideEffectsOfSelector(closureCall) = %v, want empty", got)
	}
}
