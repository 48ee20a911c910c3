package commands

import (
	"github.com/spf13/cobra"
)

// postdomCmd represents the postdom command
var postdomCmd = &cobra.Command{
	Use:   "postdom [<file> <function>]",
	Short: "Compute the post-dominator tree of a function",
	Long: `Computes the post-dominator tree of a function's control flow graph: for
each block, the set of blocks it immediately post-dominates. Multiple exit
blocks are unified internally under a virtual exit, which never appears in
the output. Blocks that reach no exit are omitted.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTreeCommand(cmd, args, true)
	},
}

func init() {
	postdomCmd.Flags().StringP("graph", "g", "", "Graph document (YAML or JSON) instead of Go source")
	postdomCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	postdomCmd.Flags().Bool("verify", false, "Cross-check against the classical solver (aborts on mismatch)")
	postdomCmd.Flags().Bool("no-cache", false, "Bypass the result cache")
	RootCmd.AddCommand(postdomCmd)
}
