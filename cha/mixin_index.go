package cha

// MixinIndex maps each mixin class to the set of mixin applications that
// use it, and derives the *live* projection on demand: using a named mixin
// application C = S with M as a mixin is equivalent to mixing M directly,
// so C's own mixin uses must be discoverable via M too.
type MixinIndex struct {
	// allUses holds every registered application of a mixin, live or not,
	// in registration order.
	allUses map[Class][]Class

	// live is computed lazily, once, at first access after close; nil
	// until then.
	live map[Class][]Class

	isLive func(app Class) bool
}

func newMixinIndex(isLive func(app Class) bool) *MixinIndex {
	return &MixinIndex{
		allUses: make(map[Class][]Class),
		isLive:  isLive,
	}
}

// registerMixinUse records that app uses mixin as its mixin. mixin must be
// a declaration; the caller (World.RegisterMixinUse) enforces this.
func (m *MixinIndex) registerMixinUse(app, mixin Class) {
	for _, existing := range m.allUses[mixin] {
		if existing == app {
			return
		}
	}
	m.allUses[mixin] = append(m.allUses[mixin], app)
	// A fresh registration invalidates any memoized live projection.
	m.live = nil
}

// allMixinUsesOf is a direct lookup: every recorded application of mixin,
// including non-live ones.
func (m *MixinIndex) allMixinUsesOf(mixin Class) []Class {
	return m.allUses[mixin]
}

// mixinUsesOf returns the live projection: applications of mixin that are
// themselves instantiated, plus — transitively — applications of any named
// mixin application that mixes mixin. Computed once and cached; later calls
// (for any mixin) reuse the cached map until a new registration invalidates
// it.
func (m *MixinIndex) mixinUsesOf(mixin Class) []Class {
	if m.live == nil {
		m.computeLive()
	}
	return m.live[mixin]
}

func (m *MixinIndex) computeLive() {
	m.live = make(map[Class][]Class, len(m.allUses))
	for mixinCls, apps := range m.allUses {
		var liveApps []Class
		for _, app := range apps {
			m.collectLiveUses(app, &liveApps)
		}
		if len(liveApps) > 0 {
			m.live[mixinCls] = liveApps
		}
	}
}

// collectLiveUses appends app to out when it is live, and — when app is
// itself a named mixin application — recurses into every application that
// mixes app, since mixing a named mixin application C = S with M is
// equivalent to mixing M directly.
func (m *MixinIndex) collectLiveUses(app Class, out *[]Class) {
	if m.isLive(app) {
		*out = append(*out, app)
	}
	for _, transitiveApp := range m.allUses[app] {
		m.collectLiveUses(transitiveApp, out)
	}
}

// isSubclassOfMixinUseOf walks cls and its superclasses, canonicalizing
// each to its declaration, looking for a mixin application whose Mixin()
// declaration equals mixin.
func isSubclassOfMixinUseOf(cls, mixin Class) bool {
	mixinDecl := classKey(mixin)
	for c := cls; c != nil; c = c.Superclass() {
		decl := classKey(c)
		if decl.IsMixinApplication() && classKey(decl.Mixin()) == mixinDecl {
			return true
		}
	}
	return false
}

// hasAnySubclassThatMixes reports whether any application of mixin is a
// subclass of superclass. Per the open question in the design notes, the
// superclass itself is never special-cased: every application of mixin is
// tested via isSubclassOf(app, superclass), full stop.
func (m *MixinIndex) hasAnySubclassThatMixes(w *World, superclass, mixin Class) bool {
	for _, app := range m.allUses[mixin] {
		if w.isSubclassOf(app, superclass) {
			return true
		}
	}
	return false
}

// hasAnySubclassOfMixinUseThatImplements reports whether, for any live use
// of cls as a mixin, some subclass of that use implements typ.
func (m *MixinIndex) hasAnySubclassOfMixinUseThatImplements(w *World, cls, typ Class) bool {
	for _, use := range m.mixinUsesOf(cls) {
		if w.hasAnySubclassThatImplements(use, typ) {
			return true
		}
	}
	return false
}
