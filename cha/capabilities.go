package cha

// CoreClasses yields the canonical built-in class handles the engine needs
// to special-case: Object (the root of every hierarchy) and Function (the
// structural supertype of any class with a CallType).
type CoreClasses interface {
	Object() Class
	Function() Class
}

// Backend answers questions about the host language/runtime that the engine
// cannot infer from Class/Element alone.
type Backend interface {
	// IsNative reports whether e is backed by a native (host-runtime)
	// implementation; native fields may alias changing host state and so
	// can never be proven never-changing.
	IsNative(e Element) bool
	// IsJsInterop reports whether cls is a JS-interop class.
	IsJsInterop(cls Class) bool
	// IsForeign reports whether e is a foreign (FFI) element.
	IsForeign(e Element) bool
	// JsInteropLub is the designated host-object class used as the LUB
	// for JS-interop classes.
	JsInteropLub() Class
}

// ResolverWorld exposes the parts of the resolver's own bookkeeping that
// close() and fieldNeverChanges need but does not itself own.
type ResolverWorld interface {
	// DirectlyInstantiatedClasses is the set of classes resolution proved
	// are `new`-ed somewhere in reachable program text.
	DirectlyInstantiatedClasses() []Class
	// IsImplemented reports whether cls is implemented by some class.
	IsImplemented(cls Class) bool
	// HasInvokedSetter reports whether a setter for e has been observed.
	// world is passed through so the resolver can consult the engine's own
	// state (e.g. selector registrations) without the engine exposing it
	// more broadly.
	HasInvokedSetter(e Element, world *World) bool
	// FieldSetters reports whether the resolver recorded a field-setter
	// for e.
	FieldSetters(e Element) bool
}

// CompilerOptions exposes the subset of global compiler flags the engine's
// behavior depends on.
type CompilerOptions interface {
	HasIncrementalSupport() bool
	EnabledInvokeOn() bool
}

// Reporter is the sole channel for compiler-internal invariant violations;
// the engine never panics or writes to stderr directly.
type Reporter interface {
	InternalError(cls Class, msg string)
}

// TypeMask is the abstract domain over the class lattice that the engine
// consumes but never allocates or mutates.
type TypeMask interface {
	LocateSingleElement(selector Selector, world *World) Element
	NeedsNoSuchMethodHandling(selector Selector, world *World) bool
}
