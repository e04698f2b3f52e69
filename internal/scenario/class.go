package scenario

import (
	"fmt"

	"github.com/cwbudde/cha-engine/cha"
)

// scenarioClass is the scenario package's sole cha.Class implementation: a
// named declaration with an optional superclass, a list of directly
// implemented interfaces, and an optional mixin it was built from. It plays
// the same role here that *ClassType plays inside a real resolver.
type scenarioClass struct {
	name       string
	super      *scenarioClass
	implements []*scenarioClass
	mixinName  string
	mixin      *scenarioClass
	callType   bool
}

func (c *scenarioClass) Name() string              { return c.name }
func (c *scenarioClass) Declaration() cha.Class     { return c }
func (c *scenarioClass) IsResolved() bool           { return true }
func (c *scenarioClass) IsDeclaration() bool        { return true }
func (c *scenarioClass) IsMixinApplication() bool   { return c.mixin != nil }

func (c *scenarioClass) Superclass() cha.Class {
	if c.super == nil {
		return nil
	}
	return c.super
}

func (c *scenarioClass) Mixin() cha.Class {
	if c.mixin == nil {
		return nil
	}
	return c.mixin
}

func (c *scenarioClass) CallType() any {
	if c.callType {
		return c.name
	}
	return nil
}

func (c *scenarioClass) HierarchyDepth() int {
	if c.super == nil {
		return 0
	}
	return c.super.HierarchyDepth() + 1
}

// Supertypes computes the transitive, deduplicated, depth-annotated
// supertype set by walking the superclass chain, every directly implemented
// interface, and — for a mixin application — the mixin class, recursing
// into each ancestor's own Supertypes in turn.
func (c *scenarioClass) Supertypes() []cha.Supertype {
	seen := make(map[cha.Class]bool)
	var out []cha.Supertype
	add := func(ancestor *scenarioClass) {
		addWithTransitive(ancestor, seen, &out)
	}
	if c.super != nil {
		add(c.super)
	}
	for _, iface := range c.implements {
		add(iface)
	}
	if c.mixin != nil {
		add(c.mixin)
	}
	return out
}

func addWithTransitive(ancestor *scenarioClass, seen map[cha.Class]bool, out *[]cha.Supertype) {
	if seen[ancestor] {
		return
	}
	seen[ancestor] = true
	*out = append(*out, cha.Supertype{Class: ancestor, Depth: ancestor.HierarchyDepth()})
	for _, st := range ancestor.Supertypes() {
		if !seen[st.Class] {
			seen[st.Class] = true
			*out = append(*out, st)
		}
	}
}

// resolveClasses turns a flat list of ClassSpecs into linked scenarioClass
// values, in two passes: first allocate every named class, then wire up
// super/implements/mixin references, so forward references (a subclass
// listed before its superclass) are allowed. Returns the classes both as a
// name-indexed map and in declaration order (order of appearance in specs).
func resolveClasses(specs []ClassSpec) (map[string]*scenarioClass, []*scenarioClass, error) {
	byName := make(map[string]*scenarioClass, len(specs))
	order := make([]*scenarioClass, 0, len(specs))
	for _, spec := range specs {
		if _, dup := byName[spec.Name]; dup {
			return nil, nil, fmt.Errorf("duplicate class name %q", spec.Name)
		}
		c := &scenarioClass{name: spec.Name, callType: spec.CallType}
		byName[spec.Name] = c
		order = append(order, c)
	}
	for i, spec := range specs {
		c := order[i]
		if spec.Super != "" {
			super, ok := byName[spec.Super]
			if !ok {
				return nil, nil, fmt.Errorf("class %q: unknown super %q", spec.Name, spec.Super)
			}
			c.super = super
		}
		for _, ifaceName := range spec.Implements {
			iface, ok := byName[ifaceName]
			if !ok {
				return nil, nil, fmt.Errorf("class %q: unknown interface %q", spec.Name, ifaceName)
			}
			c.implements = append(c.implements, iface)
		}
		if spec.Mixin != "" {
			mixin, ok := byName[spec.Mixin]
			if !ok {
				return nil, nil, fmt.Errorf("class %q: unknown mixin %q", spec.Name, spec.Mixin)
			}
			c.mixin = mixin
			c.mixinName = spec.Mixin
		}
	}
	return byName, order, nil
}
