package cha

import (
	"fmt"
	"strings"
)

// Dump renders a deterministic plain-text snapshot of the closed world: if
// cls is nil, every instantiated class; otherwise, the classes related to
// cls. The format begins with a one-line header, then renders the
// hierarchy node for Object with a single space of indentation per depth
// level. It is stable enough to snapshot-test (see the snapshot tests in
// dump_test.go).
func (w *World) Dump(cls Class) string {
	var sb strings.Builder
	if cls != nil {
		fmt.Fprintf(&sb, "Classes related to %s:\n", classKey(cls).Name())
		w.dumpRelated(&sb, classKey(cls))
		return sb.String()
	}
	sb.WriteString("Instantiated classes:\n")
	root := w.rootNode()
	if root != nil {
		w.dumpNode(&sb, root, 0, true)
	}
	return sb.String()
}

func (w *World) rootNode() *HierarchyNode {
	if w.coreClasses == nil {
		return nil
	}
	obj := w.coreClasses.Object()
	if obj == nil {
		return nil
	}
	return w.nodes[classKey(obj)]
}

// dumpNode renders node and, recursively, its children in insertion order.
// When instantiatedOnly is true, a subtree with no instantiated node
// anywhere within it is omitted entirely.
func (w *World) dumpNode(sb *strings.Builder, node *HierarchyNode, depth int, instantiatedOnly bool) {
	if instantiatedOnly && !node.IsInstantiated() {
		return
	}
	indent := strings.Repeat(" ", depth)
	marker := ""
	if node.directlyInstantiated {
		marker = " (new)"
	} else if node.indirectlyInstantiatedCount > 0 {
		marker = fmt.Sprintf(" (indirect x%d)", node.indirectlyInstantiatedCount)
	}
	fmt.Fprintf(sb, "%s%s%s\n", indent, node.cls.Name(), marker)
	for _, child := range node.children {
		w.dumpNode(sb, child, depth+1, instantiatedOnly)
	}
}

// dumpRelated renders cls's ancestor chain, cls itself with its whole
// subclass tree, and the names of the foreign subtype roots on its ClassSet
// (their own subclasses are not listed), without an instantiated-only
// filter.
func (w *World) dumpRelated(sb *strings.Builder, decl Class) {
	node := w.nodes[decl]
	if node == nil {
		fmt.Fprintf(sb, "  <unregistered>\n")
		return
	}

	var ancestors []*HierarchyNode
	for p := node.parent; p != nil; p = p.parent {
		ancestors = append(ancestors, p)
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		fmt.Fprintf(sb, "%s%s\n", strings.Repeat(" ", ancestors[i].depth), ancestors[i].cls.Name())
	}

	w.dumpNode(sb, node, node.depth, false)

	set := w.classSets[decl]
	if set == nil || len(set.foreignSubtypes) == 0 {
		return
	}
	sb.WriteString("  implemented by:\n")
	for _, f := range set.foreignSubtypes {
		fmt.Fprintf(sb, "    %s\n", f.cls.Name())
	}
}
