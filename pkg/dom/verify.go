package dom

import (
	"fmt"
	"os"

	"github.com/l3aro/go-dominance-query/internal/log"
)

// exitProcess is swapped out by tests.
var exitProcess = func() { os.Exit(1) }

// CompareTrees checks subject against a trusted reference tree for the same
// function and returns the list of structural differences: size mismatch,
// dominators missing from the subject, differing child sets. An empty result
// means the trees are identical.
func CompareTrees(subject, reference Tree) []string {
	var diffs []string

	if len(subject) != len(reference) {
		diffs = append(diffs, fmt.Sprintf("different size: subject has %d dominators, reference has %d", len(subject), len(reference)))
	}

	for parent, refChildren := range reference {
		children, ok := subject[parent]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s not found in subject", parent.Name))
			continue
		}
		same := len(children) == len(refChildren)
		if same {
			for child := range refChildren {
				if _, ok := children[child]; !ok {
					same = false
					break
				}
			}
		}
		if !same {
			diffs = append(diffs, fmt.Sprintf("%s's children are different", parent.Name))
		}
	}
	return diffs
}

// MustMatch asserts that subject and reference are structurally equal. On
// any mismatch it dumps both trees and terminates the process: a validation
// failure here means one of the solvers is wrong, which is never recoverable.
// Development-time cross-validation only.
func MustMatch(logger log.Logger, what string, subject, reference Tree) {
	diffs := CompareTrees(subject, reference)
	if len(diffs) == 0 {
		return
	}

	sep := "==================================="
	fmt.Fprintf(os.Stderr, "subject %s tree:%s\n", what, sep)
	subject.Dump(os.Stderr)
	fmt.Fprintf(os.Stderr, "reference %s tree:%s\n", what, sep)
	reference.Dump(os.Stderr)
	fmt.Fprintln(os.Stderr, sep)

	for _, diff := range diffs {
		logger.Error("tree mismatch", "tree", what, "diff", diff)
	}
	exitProcess()
}

// verifyAgainstClassic rebuilds the tree with the classical solver on the
// exact same RPO inputs and fatally compares it against the fast solver's
// output.
func (info *Info) verifyAgainstClassic(opts Options, what string, subject Tree, order []node, index map[node]int, reachable map[node]bool, root int, preds func(node) []node) {
	idoms, err := classicIDoms(order, index, reachable, root, preds)
	if err != nil {
		opts.Logger.Error("classical solver failed", "function", info.Func.Name, "tree", what, "error", err)
		exitProcess()
		return
	}
	what = fmt.Sprintf("%s (function %s)", what, info.Func.Name)
	MustMatch(opts.Logger, what, subject, buildTree(order, idoms))
}
