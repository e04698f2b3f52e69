package cha

// Test fixtures: a minimal Class/Element/capability implementation good
// enough to exercise the engine end to end, grounded on the teacher's own
// habit of building small in-memory ClassType/InterfaceType fixtures
// directly inside _test.go files (see internal/types/type_hierarchy_test.go).

type testClass struct {
	name       string
	super      *testClass
	ifaces     []*testClass
	mixinApp   bool
	mixinCls   *testClass
	callType   any
	unresolved bool
}

func cls(name string, super *testClass, ifaces ...*testClass) *testClass {
	return &testClass{name: name, super: super, ifaces: ifaces}
}

func mixinApp(name string, super, mixin *testClass) *testClass {
	return &testClass{name: name, super: super, mixinApp: true, mixinCls: mixin}
}

func (c *testClass) Declaration() Class    { return c }
func (c *testClass) Name() string          { return c.name }
func (c *testClass) Superclass() Class {
	if c.super == nil {
		return nil
	}
	return c.super
}
func (c *testClass) IsMixinApplication() bool { return c.mixinApp }
func (c *testClass) Mixin() Class {
	if c.mixinCls == nil {
		return nil
	}
	return c.mixinCls
}
func (c *testClass) CallType() any   { return c.callType }
func (c *testClass) IsResolved() bool { return !c.unresolved }
func (c *testClass) IsDeclaration() bool { return true }

func (c *testClass) HierarchyDepth() int {
	if c.super == nil {
		return 0
	}
	return c.super.HierarchyDepth() + 1
}

// Supertypes computes the transitive, deduplicated, depth-annotated
// supertype set by walking the superclass chain, every directly
// implemented interface, and (for mixin applications) the mixin class —
// recursing into each of their own Supertypes() in turn.
func (c *testClass) Supertypes() []Supertype {
	seen := make(map[Class]bool)
	var out []Supertype
	add := func(ancestor *testClass) {
		addWithTransitive(ancestor, seen, &out)
	}
	if c.super != nil {
		add(c.super)
	}
	for _, iface := range c.ifaces {
		add(iface)
	}
	if c.mixinApp && c.mixinCls != nil {
		add(c.mixinCls)
	}
	return out
}

func addWithTransitive(ancestor *testClass, seen map[Class]bool, out *[]Supertype) {
	if seen[ancestor] {
		return
	}
	seen[ancestor] = true
	*out = append(*out, Supertype{Class: ancestor, Depth: ancestor.HierarchyDepth()})
	for _, st := range ancestor.Supertypes() {
		if !seen[classKey(st.Class)] {
			seen[classKey(st.Class)] = true
			*out = append(*out, st)
		}
	}
}

type testElement struct {
	name        string
	instance    bool
	abstract    bool
	field       bool
	final       bool
	constant    bool
	getter      bool
	setter      bool
	ctorBody    bool
}

func elem(name string) *testElement { return &testElement{name: name, instance: true} }

func (e *testElement) Declaration() Element            { return e }
func (e *testElement) Name() string                    { return e.name }
func (e *testElement) IsInstanceMember() bool           { return e.instance }
func (e *testElement) IsAbstract() bool                 { return e.abstract }
func (e *testElement) IsField() bool                    { return e.field }
func (e *testElement) IsFinal() bool                    { return e.final }
func (e *testElement) IsConst() bool                    { return e.constant }
func (e *testElement) IsGetter() bool                   { return e.getter }
func (e *testElement) IsSetter() bool                   { return e.setter }
func (e *testElement) IsGenerativeConstructorBody() bool { return e.ctorBody }

// ---- capability fixtures --------------------------------------------------

type testCoreClasses struct {
	object, function *testClass
}

func (c testCoreClasses) Object() Class   { return c.object }
func (c testCoreClasses) Function() Class { return c.function }

type testBackend struct {
	native map[Element]bool
}

func (b testBackend) IsNative(e Element) bool    { return b.native[e] }
func (b testBackend) IsJsInterop(Class) bool     { return false }
func (b testBackend) IsForeign(Element) bool     { return false }
func (b testBackend) JsInteropLub() Class        { return nil }

type testResolverWorld struct {
	directlyInstantiated []Class
	invokedSetter         map[Element]bool
	fieldSetters          map[Element]bool
}

func (r *testResolverWorld) DirectlyInstantiatedClasses() []Class { return r.directlyInstantiated }
func (r *testResolverWorld) IsImplemented(Class) bool              { return true }
func (r *testResolverWorld) HasInvokedSetter(e Element, _ *World) bool {
	return r.invokedSetter[e]
}
func (r *testResolverWorld) FieldSetters(e Element) bool { return r.fieldSetters[e] }

type testCompilerOptions struct {
	incremental bool
	invokeOn    bool
}

func (o testCompilerOptions) HasIncrementalSupport() bool { return o.incremental }
func (o testCompilerOptions) EnabledInvokeOn() bool       { return o.invokeOn }

type testReporter struct {
	errors []string
}

func (r *testReporter) InternalError(_ Class, msg string) {
	r.errors = append(r.errors, msg)
}

// testMask is a trivial TypeMask stand-in: it always answers with a fixed
// single element (or none) and a fixed needsNoSuchMethodHandling verdict,
// enough to exercise LocateSingleElement/ExtendMaskIfReachesAll without
// depending on a real mask lattice (explicitly out of scope, §1).
type testMask struct {
	single      Element
	needsNoSuchMethod bool
}

func (m testMask) LocateSingleElement(Selector, *World) Element { return m.single }
func (m testMask) NeedsNoSuchMethodHandling(Selector, *World) bool {
	return m.needsNoSuchMethod
}

// newTestWorld builds a World wired with object/function core classes and
// the given resolver/compiler-options fixtures, ready for registration.
func newTestWorld(object, function *testClass, resolver *testResolverWorld, opts testCompilerOptions, reporter *testReporter) *World {
	return NewWorld(
		WithCoreClasses(testCoreClasses{object: object, function: function}),
		WithBackend(testBackend{native: make(map[Element]bool)}),
		WithResolverWorld(resolver),
		WithCompilerOptions(opts),
		WithReporter(reporter),
	)
}
