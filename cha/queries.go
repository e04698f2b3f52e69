package cha

// The closed-world query methods in this file assert the world is closed;
// per §7 a violation is reported to the injected Reporter and the method
// returns its documented zero value (false / nil / empty) rather than
// panicking. AllMixinUsesOf and the side-effect-registry passthroughs at the
// end of the file do not check the phase.

// IsSubclassOf walks x upward while x.Depth >= y.Depth, comparing identity.
// Object short-circuits both directions: y == Object is always true, and
// x == Object with y != Object is always false.
func (w *World) IsSubclassOf(x, y Class) bool {
	if !w.requireClosed("IsSubclassOf") {
		return false
	}
	return w.isSubclassOf(x, y)
}

// isSubclassOf is the unchecked core used internally (e.g. by MixinIndex)
// where the closed-phase assertion has already happened at the public
// entry point.
func (w *World) isSubclassOf(x, y Class) bool {
	xd, yd := classKey(x), classKey(y)
	if w.isObject(yd) {
		return true
	}
	if w.isObject(xd) {
		return false
	}
	xn := w.nodes[xd]
	if xn == nil {
		return false
	}
	yn := w.nodes[yd]
	if yn == nil {
		return false
	}
	for n := xn; n != nil && n.depth >= yn.depth; n = n.parent {
		if n.cls == yd {
			return true
		}
	}
	return false
}

func (w *World) isObject(cls Class) bool {
	if w.coreClasses == nil {
		return false
	}
	obj := w.coreClasses.Object()
	return obj != nil && classKey(obj) == cls
}

func (w *World) isFunctionClass(cls Class) bool {
	if w.coreClasses == nil {
		return false
	}
	fn := w.coreClasses.Function()
	return fn != nil && classKey(fn) == cls
}

// IsSubtypeOf implements: y == Object is always true; x == Object with
// y != Object is always false; x.asInstanceOf(y) != nil (i.e. y appears in
// x's supertype set) is true; otherwise, if y is the structural Function
// class and x has a CallType, true; otherwise false.
func (w *World) IsSubtypeOf(x, y Class) bool {
	if !w.requireClosed("IsSubtypeOf") {
		return false
	}
	xd, yd := classKey(x), classKey(y)
	if w.isObject(yd) {
		return true
	}
	if w.isObject(xd) {
		return false
	}
	if xd == yd {
		return true
	}
	for _, st := range xd.Supertypes() {
		if classKey(st.Class) == yd {
			return true
		}
	}
	if w.isFunctionClass(yd) && xd.CallType() != nil {
		return true
	}
	return false
}

// SubclassesOf returns every directly-instantiated descendant of cls,
// including cls itself if instantiated.
func (w *World) SubclassesOf(cls Class) []Class {
	if !w.requireClosed("SubclassesOf") {
		return nil
	}
	return w.nodesToClasses(w.subclassNodes(cls, MaskDirectlyInstantiated, false))
}

// StrictSubclassesOf excludes cls itself.
func (w *World) StrictSubclassesOf(cls Class) []Class {
	if !w.requireClosed("StrictSubclassesOf") {
		return nil
	}
	return w.nodesToClasses(w.subclassNodes(cls, MaskDirectlyInstantiated, true))
}

// StrictSubclassCount is len(StrictSubclassesOf(cls)).
func (w *World) StrictSubclassCount(cls Class) int {
	if !w.requireClosed("StrictSubclassCount") {
		return 0
	}
	return len(w.subclassNodes(cls, MaskDirectlyInstantiated, true))
}

func (w *World) subclassNodes(cls Class, mask TraversalMask, strict bool) []*HierarchyNode {
	node := w.nodes[classKey(cls)]
	if node == nil {
		return nil
	}
	return node.subclassesByMask(mask, strict)
}

func (w *World) nodesToClasses(nodes []*HierarchyNode) []Class {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Class, len(nodes))
	for i, n := range nodes {
		out[i] = n.cls
	}
	return out
}

// SubtypesOf returns every directly-instantiated subtype of cls (subclass
// domain plus foreign subtype domain).
func (w *World) SubtypesOf(cls Class) []Class {
	if !w.requireClosed("SubtypesOf") {
		return nil
	}
	set := w.classSets[classKey(cls)]
	if set == nil {
		return nil
	}
	return w.nodesToClasses(set.subtypesByMask(MaskDirectlyInstantiated, false))
}

// StrictSubtypesOf excludes cls itself from the subclass-tree portion of
// the walk (foreign subtype roots are, by definition, never cls itself).
func (w *World) StrictSubtypesOf(cls Class) []Class {
	if !w.requireClosed("StrictSubtypesOf") {
		return nil
	}
	set := w.classSets[classKey(cls)]
	if set == nil {
		return nil
	}
	return w.nodesToClasses(set.subtypesByMask(MaskDirectlyInstantiated, true))
}

// HasAnyStrictSubtype reports whether cls has at least one strict subtype
// node in the subtype domain (any class, instantiated or not).
func (w *World) HasAnyStrictSubtype(cls Class) bool {
	if !w.requireClosed("HasAnyStrictSubtype") {
		return false
	}
	set := w.classSets[classKey(cls)]
	if set == nil {
		return false
	}
	return len(set.subtypesByMask(MaskAll, true)) > 0
}

// HasOnlySubclasses reports whether cls has no foreign subtype contributing
// an instantiated descendant — i.e. every instantiation of cls's type comes
// through the subclass tree.
func (w *World) HasOnlySubclasses(cls Class) bool {
	if !w.requireClosed("HasOnlySubclasses") {
		return false
	}
	set := w.classSets[classKey(cls)]
	if set == nil {
		return true
	}
	return set.hasOnlyInstantiatedSubclasses()
}

// IsIndirectlyInstantiated reports HierarchyNode.IndirectlyInstantiatedCount() > 0.
func (w *World) IsIndirectlyInstantiated(cls Class) bool {
	if !w.requireClosed("IsIndirectlyInstantiated") {
		return false
	}
	node := w.nodes[classKey(cls)]
	return node != nil && node.indirectlyInstantiatedCount > 0
}

// IsDirectlyInstantiated reports HierarchyNode.DirectlyInstantiated().
func (w *World) IsDirectlyInstantiated(cls Class) bool {
	if !w.requireClosed("IsDirectlyInstantiated") {
		return false
	}
	node := w.nodes[classKey(cls)]
	return node != nil && node.directlyInstantiated
}

// IsInstantiated reports HierarchyNode.IsInstantiated().
func (w *World) IsInstantiated(cls Class) bool {
	if !w.requireClosed("IsInstantiated") {
		return false
	}
	node := w.nodes[classKey(cls)]
	return node != nil && node.IsInstantiated()
}

// GetLubOfInstantiatedSubclasses returns the most specific ancestor
// (possibly cls) dominating every directly-instantiated descendant of cls,
// or nil if cls was never registered or has no instantiated descendant.
func (w *World) GetLubOfInstantiatedSubclasses(cls Class) Class {
	if !w.requireClosed("GetLubOfInstantiatedSubclasses") {
		return nil
	}
	node := w.nodes[classKey(cls)]
	if node == nil {
		return nil
	}
	lub := node.getLubOfInstantiatedSubclasses()
	if lub == nil {
		return nil
	}
	return lub.cls
}

// GetLubOfInstantiatedSubtypes is GetLubOfInstantiatedSubclasses extended
// over the full subtype domain.
func (w *World) GetLubOfInstantiatedSubtypes(cls Class) Class {
	if !w.requireClosed("GetLubOfInstantiatedSubtypes") {
		return nil
	}
	set := w.classSets[classKey(cls)]
	if set == nil {
		return nil
	}
	lub := set.getLubOfInstantiatedSubtypes()
	if lub == nil {
		return nil
	}
	return lub.cls
}

// HaveAnyCommonSubtypes intersects a's and b's subtype traversals,
// materializing the smaller side and probing the larger. Either set being
// empty is trivially false.
func (w *World) HaveAnyCommonSubtypes(a, b Class) bool {
	if !w.requireClosed("HaveAnyCommonSubtypes") {
		return false
	}
	setA := w.classSets[classKey(a)]
	setB := w.classSets[classKey(b)]
	if setA == nil || setB == nil {
		return false
	}
	nodesA := setA.subtypesByMask(MaskAll, false)
	nodesB := setB.subtypesByMask(MaskAll, false)
	if len(nodesA) == 0 || len(nodesB) == 0 {
		return false
	}
	if len(nodesB) < len(nodesA) {
		nodesA, nodesB = nodesB, nodesA
	}
	small := make(map[*HierarchyNode]bool, len(nodesA))
	for _, n := range nodesA {
		small[n] = true
	}
	for _, n := range nodesB {
		if small[n] {
			return true
		}
	}
	return false
}

// CommonSupertypesOf fetches each input class's ordered (depth-annotated)
// supertype set, lets depth be the shallowest "deepest entry" across all
// inputs, then — starting from the first class's supertype chain at that
// depth — walks upward toward Object, accepting each candidate ancestor
// that appears (by declaration identity) in every other input's supertype
// set. Accepted ancestors are emitted in walk order, terminating with
// Object.
func (w *World) CommonSupertypesOf(classes []Class) []Class {
	if !w.requireClosed("CommonSupertypesOf") {
		return nil
	}
	if len(classes) == 0 {
		return nil
	}
	decls := make([]Class, len(classes))
	for i, c := range classes {
		decls[i] = classKey(c)
	}

	minMaxDepth := -1
	for _, d := range decls {
		maxDepth := maxSupertypeDepth(d)
		if minMaxDepth == -1 || maxDepth < minMaxDepth {
			minMaxDepth = maxDepth
		}
	}
	if minMaxDepth < 0 {
		return nil
	}

	firstByDepth := make(map[int][]Class)
	for _, st := range decls[0].Supertypes() {
		d := st.Depth
		firstByDepth[d] = append(firstByDepth[d], classKey(st.Class))
	}

	otherSets := make([]map[Class]bool, 0, len(decls)-1)
	for _, other := range decls[1:] {
		set := make(map[Class]bool)
		for _, st := range other.Supertypes() {
			set[classKey(st.Class)] = true
		}
		otherSets = append(otherSets, set)
	}

	var out []Class
	for d := minMaxDepth; d >= 0; d-- {
		for _, candidate := range firstByDepth[d] {
			if allSetsContain(candidate, otherSets) {
				out = append(out, candidate)
			}
		}
	}
	return out
}

func maxSupertypeDepth(cls Class) int {
	max := -1
	for _, st := range cls.Supertypes() {
		if st.Depth > max {
			max = st.Depth
		}
	}
	return max
}

func allSetsContain(c Class, sets []map[Class]bool) bool {
	for _, set := range sets {
		if !set[c] {
			return false
		}
	}
	return true
}

// EverySubtypeIsSubclassOfOrMixinUseOf is memoized in a 2-level table keyed
// on (x.Declaration(), y.Declaration()); entries are installed on first
// query and never evicted, matching §4.4/§9 exactly.
func (w *World) EverySubtypeIsSubclassOfOrMixinUseOf(x, y Class) bool {
	if !w.requireClosed("EverySubtypeIsSubclassOfOrMixinUseOf") {
		return false
	}
	xd, yd := classKey(x), classKey(y)
	key := subtypePairKey{xd, yd}
	if v, ok := w.subtypeMemo[key]; ok {
		return v
	}
	set := w.classSets[xd]
	result := true
	if set != nil {
		for _, node := range set.subtypesByMask(MaskAll, false) {
			if !w.isSubclassOf(node.cls, yd) && !isSubclassOfMixinUseOf(node.cls, yd) {
				result = false
				break
			}
		}
	}
	w.subtypeMemo[key] = result
	return result
}

// HasAnySubclassThatImplements looks up the typesImplementedBySubclasses
// table built during Close.
func (w *World) HasAnySubclassThatImplements(superclass, typ Class) bool {
	if !w.requireClosed("HasAnySubclassThatImplements") {
		return false
	}
	return w.hasAnySubclassThatImplements(superclass, typ)
}

func (w *World) hasAnySubclassThatImplements(superclass, typ Class) bool {
	set, ok := w.typesImplementedBySubclasses[classKey(superclass)]
	if !ok {
		return false
	}
	return set[classKey(typ)]
}

// LocateSingleElement delegates to mask.LocateSingleElement; a nil mask is
// treated as the dynamic top mask, which can never locate a single element.
func (w *World) LocateSingleElement(selector Selector, mask TypeMask) Element {
	if !w.requireClosed("LocateSingleElement") {
		return nil
	}
	if mask == nil {
		return nil
	}
	return mask.LocateSingleElement(selector, w)
}

// LocateSingleField is LocateSingleElement plus an IsField filter.
func (w *World) LocateSingleField(selector Selector, mask TypeMask) Element {
	e := w.LocateSingleElement(selector, mask)
	if e == nil || !e.IsField() {
		return nil
	}
	return e
}

// ExtendMaskIfReachesAll broadens mask to the dynamic top (nil, by this
// package's convention) if invokeOn is enabled and
// mask.NeedsNoSuchMethodHandling is true; otherwise returns mask unchanged.
// A nil input is already the dynamic top and is returned as-is.
func (w *World) ExtendMaskIfReachesAll(selector Selector, mask TypeMask) TypeMask {
	if !w.requireClosed("ExtendMaskIfReachesAll") {
		return mask
	}
	if mask == nil {
		return nil
	}
	if w.enabledInvokeOn && mask.NeedsNoSuchMethodHandling(selector, w) {
		return nil
	}
	return mask
}

// GetSideEffectsOfSelector delegates to the SideEffectRegistry.
func (w *World) GetSideEffectsOfSelector(selector Selector, mask TypeMask) SideEffects {
	if !w.requireClosed("GetSideEffectsOfSelector") {
		return AllSideEffects
	}
	return w.effects.getSideEffectsOfSelector(selector, mask)
}

// ---- Mixin queries (§4.5) -------------------------------------------------

// AllMixinUsesOf is a direct lookup of every recorded application of mixin.
func (w *World) AllMixinUsesOf(mixin Class) []Class {
	return w.mixins.allMixinUsesOf(classKey(mixin))
}

// MixinUsesOf returns the live projection of mixin's applications.
func (w *World) MixinUsesOf(mixin Class) []Class {
	if !w.requireClosed("MixinUsesOf") {
		return nil
	}
	return w.mixins.mixinUsesOf(classKey(mixin))
}

// IsSubclassOfMixinUseOf reports whether cls or any of its superclasses is
// a mixin application whose mixin is mixinCls.
func (w *World) IsSubclassOfMixinUseOf(cls, mixinCls Class) bool {
	if !w.requireClosed("IsSubclassOfMixinUseOf") {
		return false
	}
	return isSubclassOfMixinUseOf(classKey(cls), classKey(mixinCls))
}

// HasAnySubclassThatMixes reports whether any application of mixin is a
// subclass of superclass.
func (w *World) HasAnySubclassThatMixes(superclass, mixin Class) bool {
	if !w.requireClosed("HasAnySubclassThatMixes") {
		return false
	}
	return w.mixins.hasAnySubclassThatMixes(w, classKey(superclass), classKey(mixin))
}

// HasAnySubclassOfMixinUseThatImplements reports whether, for any live use
// of cls as a mixin, some subclass of that use implements typ.
func (w *World) HasAnySubclassOfMixinUseThatImplements(cls, typ Class) bool {
	if !w.requireClosed("HasAnySubclassOfMixinUseThatImplements") {
		return false
	}
	return w.mixins.hasAnySubclassOfMixinUseThatImplements(w, classKey(cls), classKey(typ))
}

// ---- Side-effect-registry passthroughs (closed-world-refiner interface) --

// RegisterSideEffects delegates to the SideEffectRegistry; valid after
// Close (type inference runs post-close).
func (w *World) RegisterSideEffects(e Element, eff SideEffects) {
	w.effects.RegisterSideEffects(e, eff)
}

// RegisterSideEffectsFree delegates to the SideEffectRegistry.
func (w *World) RegisterSideEffectsFree(e Element) { w.effects.RegisterSideEffectsFree(e) }

// GetSideEffectsOfElement delegates to the SideEffectRegistry.
func (w *World) GetSideEffectsOfElement(e Element) SideEffects {
	return w.effects.GetSideEffectsOfElement(e)
}

// GetCurrentlyKnownSideEffects delegates to the SideEffectRegistry.
func (w *World) GetCurrentlyKnownSideEffects(e Element) SideEffects {
	return w.effects.GetCurrentlyKnownSideEffects(e)
}

// RegisterCannotThrow delegates to the SideEffectRegistry.
func (w *World) RegisterCannotThrow(e Element) { w.effects.RegisterCannotThrow(e) }

// GetCannotThrow delegates to the SideEffectRegistry.
func (w *World) GetCannotThrow(e Element) bool { return w.effects.GetCannotThrow(e) }

// AddFunctionCalledInLoop delegates to the SideEffectRegistry.
func (w *World) AddFunctionCalledInLoop(e Element) { w.effects.AddFunctionCalledInLoop(e) }

// IsCalledInLoop delegates to the SideEffectRegistry.
func (w *World) IsCalledInLoop(e Element) bool { return w.effects.IsCalledInLoop(e) }

// RegisterMightBePassedToApply delegates to the SideEffectRegistry.
func (w *World) RegisterMightBePassedToApply(e Element) {
	w.effects.RegisterMightBePassedToApply(e)
}

// GetCurrentlyKnownMightBePassedToApply delegates to the SideEffectRegistry.
func (w *World) GetCurrentlyKnownMightBePassedToApply(e Element) bool {
	return w.effects.GetCurrentlyKnownMightBePassedToApply(e)
}

// FieldNeverChanges delegates to the SideEffectRegistry.
func (w *World) FieldNeverChanges(e Element) bool {
	return w.effects.fieldNeverChanges(e)
}
