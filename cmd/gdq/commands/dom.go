package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-dominance-query/internal/config"
)

// domCmd represents the dom command
var domCmd = &cobra.Command{
	Use:   "dom [<file> <function>]",
	Short: "Compute the dominator tree of a function",
	Long: `Computes the dominator tree of a function's control flow graph: for each
block, the set of blocks it immediately dominates. Blocks unreachable from
the entry are omitted.

The function comes from Go source (gdq dom file.go myFunc) or from a graph
document (gdq dom --graph cfg.yaml).`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTreeCommand(cmd, args, false)
	},
}

// runTreeCommand runs the analysis and prints one of the two trees.
func runTreeCommand(cmd *cobra.Command, args []string, post bool) error {
	graphPath, _ := cmd.Flags().GetString("graph")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verify, _ := cmd.Flags().GetBool("verify")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	cfgc, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfgc.Verify {
		verify = true
	}
	logger := newLogger(cfgc)

	t, err := loadTarget(graphPath, args)
	if err != nil {
		return err
	}

	result := analyzeTarget(cfgc, logger, t, verify, noCache)

	tree := result.DomTree
	label := "dominator tree"
	if post {
		tree = result.PostDomTree
		label = "post-dominator tree"
	}

	if jsonOutput || cfgc.Output == config.OutputJSON {
		payload := struct {
			FunctionName string              `json:"function_name"`
			Tree         map[string][]string `json:"tree"`
		}{FunctionName: result.FunctionName, Tree: tree}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("=== %s for function: %s ===\n", label, result.FunctionName)
	printEncodedTree(tree)
	return nil
}

// printEncodedTree prints a name-keyed tree in the diagnostic dump format.
func printEncodedTree(tree map[string][]string) {
	parents := make([]string, 0, len(tree))
	for parent := range tree {
		parents = append(parents, parent)
	}
	sort.Strings(parents)

	for _, parent := range parents {
		fmt.Printf("%s dominates:\n{ ", parent)
		for _, child := range tree[parent] {
			fmt.Printf("%s ", child)
		}
		fmt.Println("}")
	}
}

func init() {
	domCmd.Flags().StringP("graph", "g", "", "Graph document (YAML or JSON) instead of Go source")
	domCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	domCmd.Flags().Bool("verify", false, "Cross-check against the classical solver (aborts on mismatch)")
	domCmd.Flags().Bool("no-cache", false, "Bypass the result cache")
	RootCmd.AddCommand(domCmd)
}
