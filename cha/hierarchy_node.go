package cha

// TraversalMask selects which nodes a subclass/subtype walk visits: only
// directly-instantiated nodes (MaskDirectlyInstantiated) or every node
// (MaskAll).
type TraversalMask int

const (
	// MaskDirectlyInstantiated visits only nodes whose class was `new`-ed
	// directly somewhere in reachable program text.
	MaskDirectlyInstantiated TraversalMask = iota
	// MaskAll visits every node, instantiated or not.
	MaskAll
)

func (n *HierarchyNode) matches(mask TraversalMask) bool {
	switch mask {
	case MaskAll:
		return true
	case MaskDirectlyInstantiated:
		return n.directlyInstantiated
	default:
		return false
	}
}

// WalkResult is the ternary control value a traversal callback returns.
type WalkResult int

const (
	// Continue descends into the current node's children and continues
	// with its siblings.
	Continue WalkResult = iota
	// SkipSubclasses prunes the current node's subtree but continues
	// with its siblings.
	SkipSubclasses
	// Stop aborts the entire walk immediately.
	Stop
)

// HierarchyNode is one per-class node of the subclass tree: a parent link,
// a directly-instantiated flag, an indirectly-instantiated counter, and an
// ordered child list preserved in registration order for deterministic
// traversal.
type HierarchyNode struct {
	cls    Class
	parent *HierarchyNode
	depth  int

	directlyInstantiated        bool
	indirectlyInstantiatedCount uint32

	children []*HierarchyNode
}

func newHierarchyNode(cls Class, parent *HierarchyNode) *HierarchyNode {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	return &HierarchyNode{cls: cls, parent: parent, depth: depth}
}

// Class returns the declaration this node indexes.
func (n *HierarchyNode) Class() Class { return n.cls }

// Parent returns the parent node, or nil for the root.
func (n *HierarchyNode) Parent() *HierarchyNode { return n.parent }

// Depth is 0 for the root and strictly increases along parent links.
func (n *HierarchyNode) Depth() int { return n.depth }

// DirectlyInstantiated reports whether this exact class was `new`-ed
// somewhere in reachable program text.
func (n *HierarchyNode) DirectlyInstantiated() bool { return n.directlyInstantiated }

// IndirectlyInstantiatedCount is the number of strict descendants that are
// directly instantiated (invariant I1 in the data model).
func (n *HierarchyNode) IndirectlyInstantiatedCount() uint32 {
	return n.indirectlyInstantiatedCount
}

// IsInstantiated is directlyInstantiated || indirectlyInstantiatedCount > 0.
func (n *HierarchyNode) IsInstantiated() bool {
	return n.directlyInstantiated || n.indirectlyInstantiatedCount > 0
}

// Children returns the node's children in insertion order. Callers must not
// mutate the returned slice.
func (n *HierarchyNode) Children() []*HierarchyNode { return n.children }

func (n *HierarchyNode) addChild(child *HierarchyNode) {
	n.children = append(n.children, child)
}

// markDirectlyInstantiated sets directlyInstantiated and bumps every
// strict ancestor's indirectlyInstantiatedCount by one, idempotently: a
// class already marked is never double-counted (close()'s incremental
// alreadyPopulated guard relies on this).
func (n *HierarchyNode) markDirectlyInstantiated() {
	if n.directlyInstantiated {
		return
	}
	n.directlyInstantiated = true
	for p := n.parent; p != nil; p = p.parent {
		p.indirectlyInstantiatedCount++
	}
}

// forEachSubclass walks the subtree rooted at n in pre-order, honoring the
// ternary WalkResult: SkipSubclasses prunes the current node's children but
// keeps visiting siblings via the caller's loop; Stop aborts the whole walk.
// strict excludes n itself from the walk.
func (n *HierarchyNode) forEachSubclass(f func(*HierarchyNode) WalkResult, mask TraversalMask, strict bool) WalkResult {
	if !strict {
		if r := n.visitWithMask(f, mask); r != Continue {
			return r
		}
		return n.forEachChild(f, mask)
	}
	return n.forEachChild(f, mask)
}

func (n *HierarchyNode) forEachChild(f func(*HierarchyNode) WalkResult, mask TraversalMask) WalkResult {
	for _, child := range n.children {
		r := child.visitWithMask(f, mask)
		switch r {
		case Stop:
			return Stop
		case SkipSubclasses:
			continue
		default:
			if cr := child.forEachChild(f, mask); cr == Stop {
				return Stop
			}
		}
	}
	return Continue
}

func (n *HierarchyNode) visitWithMask(f func(*HierarchyNode) WalkResult, mask TraversalMask) WalkResult {
	if !n.matches(mask) {
		return Continue
	}
	return f(n)
}

// subclassesByMask materializes, in pre-order, every descendant (and n
// itself unless strict) matching mask. The sequence is finite and
// non-restartable by construction — each call produces a fresh slice.
func (n *HierarchyNode) subclassesByMask(mask TraversalMask, strict bool) []*HierarchyNode {
	var out []*HierarchyNode
	n.forEachSubclass(func(node *HierarchyNode) WalkResult {
		out = append(out, node)
		return Continue
	}, mask, strict)
	return out
}

// anySubclass short-circuits a forEachSubclass walk as soon as predicate
// matches.
func (n *HierarchyNode) anySubclass(predicate func(*HierarchyNode) bool, mask TraversalMask, strict bool) bool {
	found := false
	n.forEachSubclass(func(node *HierarchyNode) WalkResult {
		if predicate(node) {
			found = true
			return Stop
		}
		return Continue
	}, mask, strict)
	return found
}

// getLubOfInstantiatedSubclasses returns the most specific ancestor
// (possibly n itself) that dominates every directly-instantiated
// descendant of n. It walks down from n following the unique child whose
// subtree contains every instantiated descendant; it stops and returns as
// soon as the instantiated descendants split across more than one child, or
// as soon as the current node is itself directly instantiated. Returns nil
// if n has no instantiated descendant (and is not itself instantiated).
func (n *HierarchyNode) getLubOfInstantiatedSubclasses() *HierarchyNode {
	if !n.IsInstantiated() {
		return nil
	}
	cur := n
	for {
		if cur.directlyInstantiated {
			return cur
		}
		var candidate *HierarchyNode
		for _, child := range cur.children {
			if child.IsInstantiated() {
				if candidate != nil {
					// More than one child carries instantiated
					// descendants: cur is the split point.
					return cur
				}
				candidate = child
			}
		}
		if candidate == nil {
			// cur.IsInstantiated() was true but no child qualifies and
			// cur itself isn't directly instantiated: unreachable given
			// invariant I1, but guards against a malformed tree.
			return cur
		}
		cur = candidate
	}
}
