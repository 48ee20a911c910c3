package dom

import (
	"fmt"
	"io"
	"sort"

	"github.com/l3aro/go-dominance-query/pkg/cfg"
)

// BlockSet is a set of blocks, keyed by identity.
type BlockSet map[*cfg.Block]struct{}

// Tree maps a block to the set of blocks it immediately dominates (or
// immediately post-dominates). A block with no children has no entry.
type Tree map[*cfg.Block]BlockSet

func (t Tree) insert(parent, child *cfg.Block) {
	children, ok := t[parent]
	if !ok {
		children = make(BlockSet)
		t[parent] = children
	}
	children[child] = struct{}{}
}

// Children returns the set of blocks immediately dominated by b, or nil.
func (t Tree) Children(b *cfg.Block) BlockSet { return t[b] }

// Parent returns the immediate dominator of b within the tree, or nil when b
// has none (b is the root, unreachable, or not part of the function).
func (t Tree) Parent(b *cfg.Block) *cfg.Block {
	for parent, children := range t {
		if _, ok := children[b]; ok {
			return parent
		}
	}
	return nil
}

// Dominates reports whether a dominates b within the tree, walking the
// parent chain from b. A block dominates itself.
func (t Tree) Dominates(a, b *cfg.Block) bool {
	for cur := b; cur != nil; cur = t.Parent(cur) {
		if cur == a {
			return true
		}
	}
	return false
}

// Equal reports structural equality: same dominator keys, and for each key
// an identical child set.
func (t Tree) Equal(other Tree) bool {
	if len(t) != len(other) {
		return false
	}
	for parent, children := range t {
		otherChildren, ok := other[parent]
		if !ok || len(children) != len(otherChildren) {
			return false
		}
		for child := range children {
			if _, ok := otherChildren[child]; !ok {
				return false
			}
		}
	}
	return true
}

// Dump writes the tree in the diagnostic format, one dominator per line
// followed by the brace-delimited list of its children. Output is sorted by
// name so dumps are comparable.
func (t Tree) Dump(w io.Writer) {
	parents := make([]*cfg.Block, 0, len(t))
	for parent := range t {
		parents = append(parents, parent)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].Name < parents[j].Name })

	for _, parent := range parents {
		names := make([]string, 0, len(t[parent]))
		for child := range t[parent] {
			names = append(names, child.Name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "%s dominates:\n{ ", parent.Name)
		for _, name := range names {
			fmt.Fprintf(w, "%s ", name)
		}
		fmt.Fprintln(w, "}")
	}
}

// buildTree converts an idom array into a tree keyed by block identity.
// Unresolved and self entries are skipped, and the virtual exit never
// surfaces as a key or a value.
func buildTree(order []node, idoms []int) Tree {
	t := make(Tree)
	for i, n := range order {
		p := idoms[i]
		if p == unset || p == i {
			continue
		}
		parent := order[p]
		if parent.virtual || n.virtual {
			continue
		}
		t.insert(parent.bb, n.bb)
	}
	return t
}
