package cha

// SideEffects is a fixed bitset describing what a piece of code may mutate
// or depend on. It forms a monotone lattice under Union: effects only ever
// accumulate, never retract.
type SideEffects uint8

const (
	ChangesInstanceProperty SideEffects = 1 << iota
	ChangesStaticProperty
	ChangesIndex
	DependsOnInstancePropertyStore
	DependsOnStaticPropertyStore
	DependsOnIndexStore
)

// EmptySideEffects has no bits set.
const EmptySideEffects SideEffects = 0

// AllSideEffects has every bit set — the conservative "assume everything"
// value used when an element's behavior can't be summarized precisely.
const AllSideEffects SideEffects = ChangesInstanceProperty | ChangesStaticProperty | ChangesIndex |
	DependsOnInstancePropertyStore | DependsOnStaticPropertyStore | DependsOnIndexStore

// Union returns the monotone bitwise-or of s and other.
func (s SideEffects) Union(other SideEffects) SideEffects { return s | other }

// IsEmpty reports whether no bit is set.
func (s SideEffects) IsEmpty() bool { return s == EmptySideEffects }

func (s SideEffects) String() string {
	if s == EmptySideEffects {
		return "none"
	}
	if s == AllSideEffects {
		return "all"
	}
	names := []struct {
		bit  SideEffects
		name string
	}{
		{ChangesInstanceProperty, "changesInstanceProperty"},
		{ChangesStaticProperty, "changesStaticProperty"},
		{ChangesIndex, "changesIndex"},
		{DependsOnInstancePropertyStore, "dependsOnInstancePropertyStore"},
		{DependsOnStaticPropertyStore, "dependsOnStaticPropertyStore"},
		{DependsOnIndexStore, "dependsOnIndexStore"},
	}
	out := ""
	for _, n := range names {
		if s&n.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}

// SideEffectRegistry maps elements to their side effects and tracks a
// handful of auxiliary per-element predicates refined during type
// inference: cannot-throw, called-in-loop, and might-be-passed-to-apply.
// Unlike the structural indices, this registry stays writable after
// World.Close — type inference runs after the class world closes, and its
// findings must still be recordable.
type SideEffectRegistry struct {
	world *World

	effects map[Element]SideEffects
	free    map[Element]bool

	cannotThrow   map[Element]bool
	calledInLoop  map[Element]bool
	passedToApply map[Element]bool
}

func newSideEffectRegistry(w *World) *SideEffectRegistry {
	return &SideEffectRegistry{
		world:         w,
		effects:       make(map[Element]SideEffects),
		free:          make(map[Element]bool),
		cannotThrow:   make(map[Element]bool),
		calledInLoop:  make(map[Element]bool),
		passedToApply: make(map[Element]bool),
	}
}

// RegisterSideEffects stores eff under e's declaration, unless e was
// already proven side-effects-free — once free, always free.
func (r *SideEffectRegistry) RegisterSideEffects(e Element, eff SideEffects) {
	key := elementKey(e)
	if r.free[key] {
		return
	}
	r.effects[key] = eff
}

// RegisterSideEffectsFree pins e's entry to empty and marks it free, so
// subsequent RegisterSideEffects calls for e become no-ops.
func (r *SideEffectRegistry) RegisterSideEffectsFree(e Element) {
	key := elementKey(e)
	r.free[key] = true
	r.effects[key] = EmptySideEffects
}

// GetSideEffectsOfElement returns e's stored side effects, installing and
// returning a fresh empty value if none is recorded yet so later callers
// see a consistent default. e must be neither a generative constructor body
// nor a field — both violate the registry's model and trip an assertion.
func (r *SideEffectRegistry) GetSideEffectsOfElement(e Element) SideEffects {
	key := elementKey(e)
	if key.IsGenerativeConstructorBody() || key.IsField() {
		r.world.internalError(nil, "getSideEffectsOfElement called on %s, which is a %s",
			key.Name(), invalidElementKind(key))
		return AllSideEffects
	}
	if eff, ok := r.effects[key]; ok {
		return eff
	}
	r.effects[key] = EmptySideEffects
	return EmptySideEffects
}

// GetCurrentlyKnownSideEffects is an alias for GetSideEffectsOfElement kept
// for interface symmetry with the closed-world-refiner surface in the
// external interfaces section.
func (r *SideEffectRegistry) GetCurrentlyKnownSideEffects(e Element) SideEffects {
	return r.GetSideEffectsOfElement(e)
}

func invalidElementKind(e Element) string {
	if e.IsGenerativeConstructorBody() {
		return "generative constructor body"
	}
	return "field"
}

// RegisterCannotThrow marks e as proven never to throw.
func (r *SideEffectRegistry) RegisterCannotThrow(e Element) {
	r.cannotThrow[elementKey(e)] = true
}

// GetCannotThrow reports whether e was registered via RegisterCannotThrow.
func (r *SideEffectRegistry) GetCannotThrow(e Element) bool {
	return r.cannotThrow[elementKey(e)]
}

// AddFunctionCalledInLoop marks e as called from within a loop somewhere in
// reachable program text.
func (r *SideEffectRegistry) AddFunctionCalledInLoop(e Element) {
	r.calledInLoop[elementKey(e)] = true
}

// IsCalledInLoop reports whether e was registered via
// AddFunctionCalledInLoop.
func (r *SideEffectRegistry) IsCalledInLoop(e Element) bool {
	return r.calledInLoop[elementKey(e)]
}

// RegisterMightBePassedToApply marks e as possibly reaching Function.apply
// (or the equivalent reflective-invocation entry point).
func (r *SideEffectRegistry) RegisterMightBePassedToApply(e Element) {
	r.passedToApply[elementKey(e)] = true
}

// GetCurrentlyKnownMightBePassedToApply reports whether e might reach
// reflective invocation. If e is a synthesized closure call-method, the
// query forwards to the expression element that originated the closure.
func (r *SideEffectRegistry) GetCurrentlyKnownMightBePassedToApply(e Element) bool {
	key := elementKey(e)
	if r.passedToApply[key] {
		return true
	}
	if origin, ok := r.world.closureOrigin[key]; ok {
		return r.passedToApply[elementKey(origin)]
	}
	return false
}

// fieldNeverChanges is false unless e.IsField(). Native fields are always
// false (they may alias changing host state). Final or const fields are
// always true. Otherwise, for instance members, it is true iff the
// resolver has not seen a setter invocation and has not recorded a
// field-setter for e.
func (r *SideEffectRegistry) fieldNeverChanges(e Element) bool {
	if !e.IsField() {
		return false
	}
	key := elementKey(e)
	if r.world.backend != nil && r.world.backend.IsNative(key) {
		return false
	}
	if key.IsFinal() || key.IsConst() {
		return true
	}
	if r.world.resolver != nil {
		if r.world.resolver.HasInvokedSetter(key, r.world) || r.world.resolver.FieldSetters(key) {
			return false
		}
	}
	return true
}

// getSideEffectsOfSelector computes the union of side effects across every
// live element that could respond to selector under mask. closureCall
// selectors always answer empty — a closure invocation's effects are
// attributed to the closure's call-method element itself, not the generic
// selector.
func (r *SideEffectRegistry) getSideEffectsOfSelector(selector Selector, mask TypeMask) SideEffects {
	if selector.Kind == CallKindClosureCall {
		return EmptySideEffects
	}

	// A mask that can pin the call to a single live element lets us skip
	// every other candidate's effects entirely; otherwise every live
	// responder to selector might be the one invoked at runtime and all of
	// them must contribute to the union.
	var candidates []Element
	if mask != nil {
		if single := mask.LocateSingleElement(selector, r.world); single != nil {
			candidates = []Element{single}
		}
	}
	if candidates == nil {
		candidates = r.world.functions.Filter(selector, nil)
	}

	union := EmptySideEffects
	for _, e := range candidates {
		if e.IsField() {
			switch selector.Kind {
			case CallKindGetter:
				if !r.fieldNeverChanges(e) {
					union = union.Union(DependsOnInstancePropertyStore)
				}
			case CallKindSetter:
				union = union.Union(ChangesInstanceProperty)
			default:
				union = union.Union(AllSideEffects)
			}
			continue
		}
		union = union.Union(r.GetSideEffectsOfElement(e))
	}
	return union
}
