package dom

import (
	"errors"
	"fmt"
)

// ErrAmbiguousIDom is returned when the classical solver finds two distinct
// immediate-dominator candidates with dominator sets of equal size. In a
// correct fixpoint the set sizes strictly increase along the dominance chain,
// so a tie means the fixpoint itself is wrong.
var ErrAmbiguousIDom = errors.New("ambiguous immediate dominator")

// classicIDoms independently derives immediate dominators by iterating full
// dominator sets to a fixpoint: every non-root node's set becomes the
// intersection of its predecessors' sets plus itself. The immediate dominator
// of a node is then its dominator (other than itself) with the largest
// dominator set, the one closest to the node along the dominance chain.
//
// This is the verification oracle for solveIDoms: quadratic, never the
// production path, but sharing nothing with the fast solver beyond the RPO
// inputs.
func classicIDoms(order []node, index map[node]int, reachable map[node]bool, root int, preds func(node) []node) ([]int, error) {
	n := len(order)

	doms := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		doms[i] = make(map[int]bool)
		if i == root {
			doms[i][i] = true
			continue
		}
		for j := 0; j < n; j++ {
			doms[i][j] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			if i == root {
				continue
			}

			var newDom map[int]bool
			for _, p := range preds(order[i]) {
				if !reachable[p] {
					continue
				}
				pi := index[p]
				if newDom == nil {
					newDom = make(map[int]bool, len(doms[pi]))
					for d := range doms[pi] {
						newDom[d] = true
					}
					continue
				}
				for d := range newDom {
					if !doms[pi][d] {
						delete(newDom, d)
					}
				}
			}
			if newDom == nil {
				newDom = make(map[int]bool)
			}
			newDom[i] = true

			if !sameIntSet(newDom, doms[i]) {
				doms[i] = newDom
				changed = true
			}
		}
	}

	idoms := make([]int, n)
	for i := range idoms {
		idoms[i] = unset
	}
	idoms[root] = root

	for u := 0; u < n; u++ {
		if u == root {
			continue
		}
		best := unset
		tied := false
		for d := 0; d < n; d++ {
			if d == u || !doms[u][d] {
				continue
			}
			switch {
			case best == unset || len(doms[d]) > len(doms[best]):
				best = d
				tied = false
			case len(doms[d]) == len(doms[best]):
				tied = true
			}
		}
		if tied {
			return nil, fmt.Errorf("%w for %s", ErrAmbiguousIDom, order[u].name())
		}
		idoms[u] = best
	}
	return idoms, nil
}

func sameIntSet(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
