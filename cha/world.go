package cha

// World is the façade that owns every index described in the data model,
// tracks the open/closed phase flag, and orchestrates registration and the
// close() phase transition. It is the only mutable state in the package —
// HierarchyNode, ClassSet, MixinIndex and FunctionSet are all reached
// through it.
type World struct {
	closed bool

	coreClasses CoreClasses
	backend     Backend
	resolver    ResolverWorld
	options     CompilerOptions
	reporter    Reporter

	hasIncrementalSupport bool
	enabledInvokeOn       bool

	nodes     map[Class]*HierarchyNode
	classSets map[Class]*ClassSet
	// classOrder records every registered declaration in registration
	// order, so later full-universe scans (e.g. the structural Function
	// edge pass in close()) stay deterministic instead of ranging over
	// the nodes map directly.
	classOrder []Class

	typedefOrder []Element
	typedefSet   map[Element]bool

	functions *FunctionSet
	mixins    *MixinIndex
	effects   *SideEffectRegistry

	alreadyPopulated map[Class]bool

	// typesImplementedBySubclasses[ancestor] is the set of supertypes
	// contributed by every directly-instantiated descendant of ancestor,
	// built incrementally in close() step 1d.
	typesImplementedBySubclasses map[Class]map[Class]bool

	subtypeMemo map[subtypePairKey]bool

	// closureOrigin maps a synthesized closure call-method element back to
	// the expression element that created the closure, so
	// GetCurrentlyKnownMightBePassedToApply can forward the query.
	closureOrigin map[Element]Element
}

type subtypePairKey struct {
	x, y Class
}

// Option configures a World at construction time.
type Option func(*World)

// WithCoreClasses injects the CoreClasses capability.
func WithCoreClasses(c CoreClasses) Option { return func(w *World) { w.coreClasses = c } }

// WithBackend injects the Backend capability.
func WithBackend(b Backend) Option { return func(w *World) { w.backend = b } }

// WithResolverWorld injects the ResolverWorld capability.
func WithResolverWorld(r ResolverWorld) Option { return func(w *World) { w.resolver = r } }

// WithCompilerOptions injects the CompilerOptions capability.
func WithCompilerOptions(o CompilerOptions) Option {
	return func(w *World) {
		w.options = o
		if o != nil {
			w.hasIncrementalSupport = o.HasIncrementalSupport()
			w.enabledInvokeOn = o.EnabledInvokeOn()
		}
	}
}

// WithReporter injects the Reporter capability.
func WithReporter(r Reporter) Option { return func(w *World) { w.reporter = r } }

// NewWorld constructs an open-phase World ready for registration.
func NewWorld(opts ...Option) *World {
	w := &World{
		nodes:                        make(map[Class]*HierarchyNode),
		classSets:                    make(map[Class]*ClassSet),
		typedefSet:                   make(map[Element]bool),
		alreadyPopulated:             make(map[Class]bool),
		typesImplementedBySubclasses: make(map[Class]map[Class]bool),
		subtypeMemo:                  make(map[subtypePairKey]bool),
		closureOrigin:                make(map[Element]Element),
	}
	w.functions = newFunctionSet()
	w.effects = newSideEffectRegistry(w)
	for _, opt := range opts {
		opt(w)
	}
	w.mixins = newMixinIndex(func(app Class) bool {
		node := w.nodes[classKey(app)]
		return node != nil && node.IsInstantiated()
	})
	return w
}

// Closed reports whether the world has been frozen via Close.
func (w *World) Closed() bool { return w.closed }

// HasClosedWorldAssumption reports whether devirtualization results may be
// trusted as exhaustive. It is false whenever incremental (open-world)
// compilation is active, even after Close, so callers can decline to apply
// unsafe optimizations.
func (w *World) HasClosedWorldAssumption() bool {
	return w.closed && !w.hasIncrementalSupport
}

// ---- Open-world interface -------------------------------------------------

// RegisterClass ensures a hierarchy node and class set exist for cls. It
// does not mark cls instantiated.
func (w *World) RegisterClass(cls Class) {
	w.ensureNode(classKey(cls))
}

// RegisterClosureClass ensures a node for cls and marks it directly
// instantiated. It is callable even after Close, since closure classes are
// synthesized during IR construction — the only structural mutation
// World.Close's contract admits post-close.
func (w *World) RegisterClosureClass(cls Class) {
	decl := classKey(cls)
	node := w.ensureNode(decl)
	if node.directlyInstantiated {
		return
	}
	node.markDirectlyInstantiated()
	w.propagateSupertypes(decl)
}

// RegisterTypedef adds td to the flat typedef set.
func (w *World) RegisterTypedef(td Element) {
	key := elementKey(td)
	if w.typedefSet[key] {
		return
	}
	w.typedefSet[key] = true
	w.typedefOrder = append(w.typedefOrder, key)
}

// AllTypedefs returns every registered typedef in registration order.
func (w *World) AllTypedefs() []Element {
	out := make([]Element, len(w.typedefOrder))
	copy(out, w.typedefOrder)
	return out
}

// RegisterUsedElement adds e to the FunctionSet iff it is a non-abstract
// instance member.
func (w *World) RegisterUsedElement(e Element) {
	key := elementKey(e)
	if !key.IsInstanceMember() || key.IsAbstract() {
		return
	}
	selectorsFor(key).forEach(func(sel Selector) {
		w.functions.register(sel, key, nil)
	})
}

// RegisterUsedElementOn is RegisterUsedElement plus an explicit declaring
// class, used when a caller can supply owner (needed for mask-filtered
// FunctionSet.Filter queries). It supplements, rather than replaces, the
// spec's registerUsedElement signature for drivers that track ownership.
func (w *World) RegisterUsedElementOn(e Element, owner Class) {
	key := elementKey(e)
	if !key.IsInstanceMember() || key.IsAbstract() {
		return
	}
	ownerDecl := classKey(owner)
	selectorsFor(key).forEach(func(sel Selector) {
		w.functions.register(sel, key, ownerDecl)
	})
}

// selectorSet is a tiny helper so RegisterUsedElement can register a
// non-field member under its natural call selector, and a field under both
// its getter and setter selectors.
type selectorSet []Selector

func (s selectorSet) forEach(f func(Selector)) {
	for _, sel := range s {
		f(sel)
	}
}

func selectorsFor(e Element) selectorSet {
	if e.IsField() {
		sels := selectorSet{Getter(e.Name())}
		if !e.IsFinal() && !e.IsConst() {
			sels = append(sels, Setter(e.Name()))
		}
		return sels
	}
	if e.IsGetter() {
		return selectorSet{Getter(e.Name())}
	}
	if e.IsSetter() {
		return selectorSet{Setter(e.Name())}
	}
	return selectorSet{{Name: e.Name(), Kind: CallKindCall}}
}

// RegisterMixinUse records that app uses mixin as its mixin declaration.
// mixin must be a declaration.
func (w *World) RegisterMixinUse(app, mixin Class) {
	mixinDecl := classKey(mixin)
	if !mixinDecl.IsDeclaration() {
		w.internalError(mixinDecl, "RegisterMixinUse requires a mixin declaration, got %s", mixinDecl.Name())
		return
	}
	w.mixins.registerMixinUse(classKey(app), mixinDecl)
}

// RegisterClosureOrigin records that callMethod is the synthesized
// call-method of a closure that originated from expr, so
// GetCurrentlyKnownMightBePassedToApply can forward queries on callMethod
// to expr per spec §4.6.
func (w *World) RegisterClosureOrigin(callMethod, expr Element) {
	w.closureOrigin[elementKey(callMethod)] = elementKey(expr)
}

// ensureNode is recursive: it ensures the parent node first, then inserts a
// new child, preserving insertion order. This is what makes traversal
// deterministic across runs (invariant I2 in the data model).
func (w *World) ensureNode(cls Class) *HierarchyNode {
	if node, ok := w.nodes[cls]; ok {
		return node
	}
	var parentNode *HierarchyNode
	if sup := cls.Superclass(); sup != nil {
		parentNode = w.ensureNode(classKey(sup))
	}
	node := newHierarchyNode(cls, parentNode)
	w.nodes[cls] = node
	w.classOrder = append(w.classOrder, cls)
	if parentNode != nil {
		parentNode.addChild(node)
	}
	w.classSets[cls] = newClassSet(node)
	w.registerForeignSubtypeEdges(cls, node)
	return node
}

// registerForeignSubtypeEdges connects cls into the subtype DAG of every
// supertype it reaches without extending it — i.e. every interface it
// implements. Supertypes already reached via the subclass chain are
// skipped; ClassSet.addSubtype is idempotent regardless, but skipping keeps
// a foreign subtype root limited to the edges the data model actually
// calls "foreign" (§4.3).
func (w *World) registerForeignSubtypeEdges(cls Class, node *HierarchyNode) {
	onSubclassChain := make(map[Class]bool)
	for p := node.parent; p != nil; p = p.parent {
		onSubclassChain[p.cls] = true
	}
	for _, st := range cls.Supertypes() {
		stDecl := classKey(st.Class)
		if stDecl == cls || onSubclassChain[stDecl] {
			continue
		}
		stSet, ok := w.classSets[stDecl]
		if !ok {
			w.ensureNode(stDecl)
			stSet = w.classSets[stDecl]
		}
		stSet.addSubtype(node)
	}
}

// GetClassHierarchyNode is test-only per the class-world interface: it
// exposes the raw HierarchyNode for a registered class, or nil if cls was
// never registered.
func (w *World) GetClassHierarchyNode(cls Class) *HierarchyNode {
	return w.nodes[classKey(cls)]
}

// GetClassSet is test-only per the class-world interface: it exposes the
// raw ClassSet for a registered class, or nil if cls was never registered.
func (w *World) GetClassSet(cls Class) *ClassSet {
	return w.classSets[classKey(cls)]
}

// ---- close() ---------------------------------------------------------

// Close transitions the world from open to closed phase. It is not
// idempotent: a second call returns IllegalPhaseError and leaves the
// world's state untouched.
func (w *World) Close() error {
	if w.closed {
		return &IllegalPhaseError{Op: "Close"}
	}
	if w.resolver != nil {
		for _, cls := range w.resolver.DirectlyInstantiatedClasses() {
			w.closeOneInstantiated(cls)
		}
	}
	w.registerFunctionSubtypeEdges()
	w.closed = true
	return nil
}

// closeOneInstantiated runs close() step 1 for a single directly
// instantiated class: the alreadyPopulated guard (incremental re-close),
// the resolver-invariant assertion, marking the node instantiated, and
// propagating supertype-implementation facts up the ancestor chain.
func (w *World) closeOneInstantiated(cls Class) {
	decl := classKey(cls)
	if w.hasIncrementalSupport && w.alreadyPopulated[decl] {
		return
	}
	if !decl.IsDeclaration() || !decl.IsResolved() {
		w.internalError(decl, "directly instantiated class %s must be a resolved declaration", decl.Name())
		return
	}
	node := w.ensureNode(decl)
	node.markDirectlyInstantiated()
	w.propagateSupertypes(decl)
	w.alreadyPopulated[decl] = true
}

// propagateSupertypes implements close() step 1d: for every ancestor of
// decl (by the subclass chain), union decl's full (transitive) supertype
// set into typesImplementedBySubclasses[ancestor]. Propagation is written
// so repeated calls for the same decl are idempotent, matching invariant
// I1.
func (w *World) propagateSupertypes(decl Class) {
	supertypes := decl.Supertypes()
	for p := w.nodes[decl].parent; p != nil; p = p.parent {
		set, ok := w.typesImplementedBySubclasses[p.cls]
		if !ok {
			set = make(map[Class]bool)
			w.typesImplementedBySubclasses[p.cls] = set
		}
		for _, st := range supertypes {
			set[classKey(st.Class)] = true
		}
	}
}

// registerFunctionSubtypeEdges implements close() step 2: any class
// implicitly implementing the structural Function type (via CallType) is
// registered as a foreign subtype of Function's ClassSet.
func (w *World) registerFunctionSubtypeEdges() {
	if w.coreClasses == nil {
		return
	}
	fn := classKey(w.coreClasses.Function())
	if fn == nil {
		return
	}
	fnSet, ok := w.classSets[fn]
	if !ok {
		return
	}
	for _, cls := range w.classOrder {
		if cls.CallType() != nil {
			fnSet.addSubtype(w.nodes[cls])
		}
	}
}

// requireClosed is the single chokepoint every closed-world query runs
// through; it never panics — callers get back a bool/nil/empty zero value
// alongside a best-effort Reporter notification, consistent with §7
// ("fatal assertion" realized as a returned error, not a crash).
func (w *World) requireClosed(op string) bool {
	if w.closed {
		return true
	}
	if w.reporter != nil {
		w.reporter.InternalError(nil, (&IllegalPhaseError{Op: op}).Error())
	}
	return false
}

// Stats is a supplemented, informal compiler-diagnostics surface (not part
// of the original distilled contract): small counts useful when eyeballing
// a closed world without rendering the full Dump text.
type Stats struct {
	RegisteredClasses    int
	DirectlyInstantiated int
	LiveMixinUses        int
}

// Stats summarizes the closed world. Valid only once Close has run.
func (w *World) Stats() Stats {
	s := Stats{RegisteredClasses: len(w.nodes)}
	for _, node := range w.nodes {
		if node.directlyInstantiated {
			s.DirectlyInstantiated++
		}
	}
	if w.mixins.live == nil && w.closed {
		w.mixins.computeLive()
	}
	for _, apps := range w.mixins.live {
		s.LiveMixinUses += len(apps)
	}
	return s
}
