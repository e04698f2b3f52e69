package cha

// FunctionSet maps a (selector-name, arity-shape) pair to the set of live
// instance members that could respond to it, filterable by receiver mask.
// "Live" here means registered via World.RegisterUsedElement — the resolver
// only calls that for instance members the rest of the compiler actually
// references.
type FunctionSet struct {
	bySelector map[Selector][]Element
	// owners maps each registered element to the class that declares it,
	// needed so Filter can test receiver-mask membership without the
	// caller re-deriving it.
	owners map[Element]Class
}

func newFunctionSet() *FunctionSet {
	return &FunctionSet{
		bySelector: make(map[Selector][]Element),
		owners:     make(map[Element]Class),
	}
}

// register adds e as a candidate responder to selector, declared on owner.
// Registration order is preserved so Filter's output is deterministic.
func (s *FunctionSet) register(selector Selector, e Element, owner Class) {
	for _, existing := range s.bySelector[selector] {
		if existing == e {
			return
		}
	}
	s.bySelector[selector] = append(s.bySelector[selector], e)
	if _, seen := s.owners[e]; !seen {
		s.owners[e] = owner
	}
}

// candidates returns every element registered under selector, regardless
// of mask, in registration order.
func (s *FunctionSet) candidates(selector Selector) []Element {
	return s.bySelector[selector]
}

// Filter returns the elements registered under selector whose declaring
// class satisfies membership — it delegates the actual receiver-mask test
// to the caller-supplied predicate so FunctionSet stays independent of the
// TypeMask lattice (the engine only consumes TypeMask, it never implements
// one).
func (s *FunctionSet) Filter(selector Selector, accepts func(owner Class) bool) []Element {
	all := s.bySelector[selector]
	if accepts == nil {
		out := make([]Element, len(all))
		copy(out, all)
		return out
	}
	var out []Element
	for _, e := range all {
		if accepts(s.owners[e]) {
			out = append(out, e)
		}
	}
	return out
}
