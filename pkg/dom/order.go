// Package dom computes dominator and post-dominator trees for a function's
// control flow graph using the iterative algorithm of Cooper, Harvey and
// Kennedy, with a classical full-set solver kept as a verification oracle.
package dom

import "github.com/l3aro/go-dominance-query/pkg/cfg"

// node is a tagged block identity used by the solvers. The virtual exit that
// roots the post-dominance traversal carries no underlying block; it is a
// distinct comparable value and can never collide with a real block.
type node struct {
	bb      *cfg.Block
	virtual bool
}

var virtualExit = node{virtual: true}

func blockNode(bb *cfg.Block) node { return node{bb: bb} }

func (n node) name() string {
	if n.virtual {
		return "<virtual exit>"
	}
	return n.bb.Name
}

// direction selects which edge relation a traversal follows.
type direction int

const (
	forward  direction = iota // follow successors
	backward                  // follow predecessors
)

func (d direction) edges(n node) []*cfg.Block {
	if n.virtual {
		return nil
	}
	if d == forward {
		return n.bb.Successors()
	}
	return n.bb.Predecessors()
}

// reversePostOrder performs a depth-first traversal from the given roots,
// following dir's edge relation, and returns the reverse-postorder sequence
// together with the set of reached nodes. Roots are explored in the order
// given; each node is visited at most once, so cycles terminate.
//
// The traversal uses an explicit stack: visitation and postorder output are
// identical to the recursive formulation, without its depth limit.
func reversePostOrder(roots []node, dir direction) ([]node, map[node]bool) {
	reachable := make(map[node]bool)
	var postorder []node

	type frame struct {
		n    node
		next int
	}
	var stack []frame

	for _, root := range roots {
		if reachable[root] {
			continue
		}
		reachable[root] = true
		stack = append(stack, frame{n: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := dir.edges(top.n)

			pushed := false
			for top.next < len(edges) {
				succ := blockNode(edges[top.next])
				top.next++
				if !reachable[succ] {
					reachable[succ] = true
					stack = append(stack, frame{n: succ})
					pushed = true
					break
				}
			}
			if !pushed {
				postorder = append(postorder, top.n)
				stack = stack[:len(stack)-1]
			}
		}
	}

	for i, j := 0, len(postorder)-1; i < j; i, j = i+1, j-1 {
		postorder[i], postorder[j] = postorder[j], postorder[i]
	}
	return postorder, reachable
}

// indexOf maps each node of an RPO sequence to its position.
func indexOf(order []node) map[node]int {
	index := make(map[node]int, len(order))
	for i, n := range order {
		index[n] = i
	}
	return index
}
