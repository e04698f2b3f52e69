package cha

// Class is the subset of a resolved class declaration the hierarchy engine
// needs. The resolver supplies the concrete implementation; the engine never
// constructs one. Implementations must be valid Go map keys — pointer
// identity is the expected discriminator, matching the "stable handle"
// contract in the data model.
type Class interface {
	// Declaration returns the canonical declaration for this class. Every
	// World entry point canonicalizes to it before touching an index, so
	// patched or forwarding variants never cause a hash-lookup miss.
	Declaration() Class

	// Superclass returns the direct superclass, or nil for the root class.
	Superclass() Class

	// Supertypes returns every transitive, deduplicated supertype,
	// depth-annotated. The engine groups entries by Depth and does not rely
	// on their order.
	Supertypes() []Supertype

	// IsMixinApplication reports whether this class's declaration combines
	// a superclass with a mixin (Mixin is only meaningful when true).
	IsMixinApplication() bool
	Mixin() Class

	// CallType is non-nil iff the class carries a synthetic call method,
	// making it structurally a function.
	CallType() any

	// HierarchyDepth is 0 for the root class and strictly increases with
	// each superclass step.
	HierarchyDepth() int

	IsResolved() bool
	IsDeclaration() bool

	// Name is used only for dump() rendering and error messages.
	Name() string
}

// Supertype pairs a transitive supertype with that supertype's own
// HierarchyDepth (0 for the root class), the depth CommonSupertypesOf
// groups and walks by.
type Supertype struct {
	Class Class
	Depth int
}

// classKey canonicalizes a class to its declaration. Every exported World
// method funnels through this single chokepoint instead of scattering
// .Declaration() calls at each call site.
func classKey(c Class) Class {
	if c == nil {
		return nil
	}
	return c.Declaration()
}
