package dom

import (
	"sort"

	"github.com/l3aro/go-dominance-query/pkg/cfg"
)

// Result is the serializable form of an analysis record: trees keyed by
// block name with name-sorted child lists. Used for JSON output and for the
// result cache.
type Result struct {
	FunctionName string              `json:"function_name" yaml:"function_name" msgpack:"function_name"`
	DomTree      map[string][]string `json:"dominator_tree" yaml:"dominator_tree" msgpack:"dominator_tree"`
	PostDomTree  map[string][]string `json:"post_dominator_tree" yaml:"post_dominator_tree" msgpack:"post_dominator_tree"`
}

// Result converts the analysis record to its serializable form.
func (info *Info) Result() *Result {
	return &Result{
		FunctionName: info.Func.Name,
		DomTree:      encodeTree(info.DomTree),
		PostDomTree:  encodeTree(info.PostDomTree),
	}
}

// Trees rebuilds the identity-keyed trees of a Result against a function
// graph. Names absent from the graph are dropped.
func (r *Result) Trees(fn *cfg.Function) (domTree, postDomTree Tree) {
	return decodeTree(r.DomTree, fn), decodeTree(r.PostDomTree, fn)
}

func encodeTree(t Tree) map[string][]string {
	out := make(map[string][]string, len(t))
	for parent, children := range t {
		names := make([]string, 0, len(children))
		for child := range children {
			names = append(names, child.Name)
		}
		sort.Strings(names)
		out[parent.Name] = names
	}
	return out
}

func decodeTree(m map[string][]string, fn *cfg.Function) Tree {
	t := make(Tree)
	for parentName, childNames := range m {
		parent := fn.BlockByName(parentName)
		if parent == nil {
			continue
		}
		for _, childName := range childNames {
			if child := fn.BlockByName(childName); child != nil {
				t.insert(parent, child)
			}
		}
	}
	return t
}
