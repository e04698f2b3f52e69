package scenario

import "testing"

func TestResolveClassesAllowsForwardReferences(t *testing.T) {
	specs := []ClassSpec{
		{Name: "A", Super: "Object"}, // Object declared after A
		{Name: "Object"},
	}
	byName, order, err := resolveClasses(specs)
	if err != nil {
		t.Fatalf("resolveClasses: %v", err)
	}
	if byName["A"].super != byName["Object"] {
		t.Errorf("A.super = %v, want Object", byName["A"].super)
	}
	if len(order) != 2 {
		t.Fatalf("order = %v, want 2 entries", order)
	}
}

func TestResolveClassesRejectsDuplicateNames(t *testing.T) {
	specs := []ClassSpec{{Name: "A"}, {Name: "A"}}
	if _, _, err := resolveClasses(specs); err == nil {
		t.Fatalf("expected an error for duplicate class name")
	}
}

func TestResolveClassesRejectsUnknownSuper(t *testing.T) {
	specs := []ClassSpec{{Name: "A", Super: "Ghost"}}
	if _, _, err := resolveClasses(specs); err == nil {
		t.Fatalf("expected an error for unknown super")
	}
}

func buildDiamondFile() *File {
	return &File{
		Classes: []ClassSpec{
			{Name: "Object"},
			{Name: "A", Super: "Object"},
			{Name: "B", Super: "A"},
			{Name: "C", Super: "A"},
			{Name: "D", Super: "B"},
		},
		Instantiated: []string{"D"},
	}
}

func TestBuildClosesWorldAndMarksInstantiation(t *testing.T) {
	f := buildDiamondFile()
	w, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !w.Closed() {
		t.Errorf("Closed() = false, want true")
	}
	d, err := f.ClassByName(w, "D")
	if err != nil {
		t.Fatalf("ClassByName(D): %v", err)
	}
	if !w.IsDirectlyInstantiated(d) {
		t.Errorf("IsDirectlyInstantiated(D) = false, want true")
	}
	a, _ := f.ClassByName(w, "A")
	if !w.IsIndirectlyInstantiated(a) {
		t.Errorf("IsIndirectlyInstantiated(A) = false, want true")
	}
}

func TestBuildRejectsUnknownInstantiatedClass(t *testing.T) {
	f := &File{
		Classes:      []ClassSpec{{Name: "Object"}},
		Instantiated: []string{"Ghost"},
	}
	if _, err := f.Build(); err == nil {
		t.Fatalf("expected an error for an unknown instantiated class")
	}
}

func TestBuildWiresMixinUse(t *testing.T) {
	f := &File{
		Classes: []ClassSpec{
			{Name: "Object"},
			{Name: "M", Super: "Object"},
			{Name: "A", Super: "Object", Mixin: "M"},
			{Name: "B", Super: "A"},
		},
		Instantiated: []string{"B"},
	}
	w, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m, _ := f.ClassByName(w, "M")
	b, _ := f.ClassByName(w, "B")
	if !w.IsSubclassOfMixinUseOf(b, m) {
		t.Errorf("IsSubclassOfMixinUseOf(B, M) = false, want true")
	}
}
