package dom

import (
	"github.com/l3aro/go-dominance-query/internal/log"
	"github.com/l3aro/go-dominance-query/pkg/cfg"
)

// Options configures an analysis call.
type Options struct {
	// Verify cross-checks the fast solver against the classical full-set
	// solver and terminates the process on any disagreement. Development
	// tooling only; leave off in normal operation.
	Verify bool

	// Logger receives diagnostics. Defaults to log.Default().
	Logger log.Logger
}

// Info is the analysis record for one function: the dominator tree and the
// post-dominator tree, each recomputed from scratch by Analyze. Concurrent
// analyses of different functions are safe; an Info must not be shared
// between concurrent Analyze calls.
type Info struct {
	Func        *cfg.Function
	DomTree     Tree
	PostDomTree Tree
}

// Analyze computes the dominator and post-dominator trees of fn.
//
// Blocks unreachable from the entry appear in neither tree; that is not an
// error. A function with no blocks yields empty trees.
func Analyze(fn *cfg.Function, opts Options) *Info {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	info := &Info{Func: fn, DomTree: make(Tree), PostDomTree: make(Tree)}
	info.computeDominators(opts)
	info.computePostDominators(opts)
	return info
}

// computeDominators runs the fast solver forward from the entry block.
func (info *Info) computeDominators(opts Options) {
	fn := info.Func
	if fn.Entry == nil {
		return
	}

	order, reachable := reversePostOrder([]node{blockNode(fn.Entry)}, forward)
	index := indexOf(order)
	root := index[blockNode(fn.Entry)]

	preds := func(n node) []node {
		ps := n.bb.Predecessors()
		nodes := make([]node, len(ps))
		for i, p := range ps {
			nodes[i] = blockNode(p)
		}
		return nodes
	}

	idoms := solveIDoms(order, index, reachable, root, preds)
	info.DomTree = buildTree(order, idoms)

	if opts.Verify {
		info.verifyAgainstClassic(opts, "dominator", info.DomTree, order, index, reachable, root, preds)
	}
}

// computePostDominators runs the fast solver over the reversed graph, rooted
// at a virtual exit synthesized as the common successor of every block with
// no successors. The virtual exit exists only inside this computation.
func (info *Info) computePostDominators(opts Options) {
	fn := info.Func

	var roots []node
	for _, b := range fn.ExitBlocks() {
		roots = append(roots, blockNode(b))
	}

	order, reachable := reversePostOrder(roots, backward)

	// The virtual exit roots the reversed graph at RPO index 0.
	order = append([]node{virtualExit}, order...)
	reachable[virtualExit] = true
	index := indexOf(order)
	root := 0

	succs := func(n node) []node {
		if n.virtual {
			return nil
		}
		ss := n.bb.Successors()
		if len(ss) == 0 {
			return []node{virtualExit}
		}
		nodes := make([]node, len(ss))
		for i, s := range ss {
			nodes[i] = blockNode(s)
		}
		return nodes
	}

	idoms := solveIDoms(order, index, reachable, root, succs)
	info.PostDomTree = buildTree(order, idoms)

	if opts.Verify {
		info.verifyAgainstClassic(opts, "post-dominator", info.PostDomTree, order, index, reachable, root, succs)
	}
}
