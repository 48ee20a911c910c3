package dom

// unset marks an index whose immediate dominator has not been resolved yet.
const unset = -1

// solveIDoms runs the Cooper-Harvey-Kennedy fixpoint over an RPO sequence.
// preds returns the solve-direction predecessors of a node: the CFG
// predecessors when computing dominators, the CFG successors (with the
// virtual exit standing in for an empty successor list) when computing
// post-dominators.
//
// On return, idoms[i] is the RPO index of node i's immediate dominator, the
// root maps to itself, and indices never reached by any resolved predecessor
// stay unset.
func solveIDoms(order []node, index map[node]int, reachable map[node]bool, root int, preds func(node) []node) []int {
	idoms := make([]int, len(order))
	for i := range idoms {
		idoms[i] = unset
	}
	idoms[root] = root

	for changed := true; changed; {
		changed = false
		for i := range order {
			if i == root {
				continue
			}
			newIDom := unset
			for _, p := range preds(order[i]) {
				if !reachable[p] {
					continue
				}
				pi := index[p]
				if idoms[pi] == unset {
					// Not processed yet; a later pass picks it up.
					continue
				}
				if newIDom == unset {
					newIDom = pi
				} else {
					newIDom = intersect(idoms, newIDom, pi)
				}
			}
			if idoms[i] != newIDom {
				idoms[i] = newIDom
				changed = true
			}
		}
	}
	return idoms
}

// intersect walks two candidate dominators up their current idom chains
// until they meet. The walk moves whichever side has the larger RPO index,
// which is sound because a resolved idom always has a smaller index than the
// nodes it dominates.
func intersect(idoms []int, b1, b2 int) int {
	for b1 != b2 {
		for b1 > b2 {
			b1 = idoms[b1]
		}
		for b2 > b1 {
			b2 = idoms[b2]
		}
	}
	return b1
}
