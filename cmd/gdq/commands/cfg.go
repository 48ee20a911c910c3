package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-dominance-query/pkg/cfg"
)

// cfgCmd represents the cfg command
var cfgCmd = &cobra.Command{
	Use:   "cfg [<file> <function>]",
	Short: "Extract and display a function's control flow graph",
	Long: `Extracts the control flow graph of a function and prints its blocks and
edges. This is the graph the dom and postdom commands analyze.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, _ := cmd.Flags().GetString("graph")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		t, err := loadTarget(graphPath, args)
		if err != nil {
			return err
		}
		doc := t.fn.Document()

		if jsonOutput {
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printDocument(doc)
		return nil
	},
}

// printDocument prints a graph document in human-readable form.
func printDocument(doc *cfg.Document) {
	fmt.Printf("=== CFG for function: %s ===\n", doc.FunctionName)
	fmt.Printf("Entry Block: %s\n", doc.EntryID)
	fmt.Printf("Exit Blocks: %v\n", doc.ExitIDs)

	fmt.Printf("\nBlocks (%d):\n", len(doc.Blocks))
	for _, block := range doc.Blocks {
		fmt.Printf("  %s (%s, lines %d-%d)\n", block.ID, block.Type, block.StartLine, block.EndLine)
		for _, stmt := range block.Statements {
			fmt.Printf("    %s\n", stmt)
		}
	}

	fmt.Printf("\nEdges (%d):\n", len(doc.Edges))
	for _, edge := range doc.Edges {
		fmt.Printf("  %s --> %s\n", edge.SourceID, edge.TargetID)
	}
}

func init() {
	cfgCmd.Flags().StringP("graph", "g", "", "Graph document (YAML or JSON) instead of Go source")
	cfgCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(cfgCmd)
}
