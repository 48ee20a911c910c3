package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-dominance-query/internal/config"
	"github.com/l3aro/go-dominance-query/pkg/cfg"
	"github.com/l3aro/go-dominance-query/pkg/dom"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [<file>]",
	Short: "Cross-check the fast solver against the classical solver",
	Long: `Runs both dominance solvers on every function of a Go file (or on a graph
document given with --graph) and compares their trees. On any disagreement
the differing trees are dumped and the process aborts; otherwise each
verified function is reported.

This is development tooling: it exists to validate the solvers, not to
analyze programs.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, _ := cmd.Flags().GetString("graph")

		cfgc, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger := newLogger(cfgc)

		if graphPath != "" {
			t, err := loadTarget(graphPath, nil)
			if err != nil {
				return err
			}
			dom.Analyze(t.fn, dom.Options{Verify: true, Logger: logger})
			fmt.Printf("verified %s\n", t.fn.Name)
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("expected a Go file argument (or --graph)")
		}
		filePath := args[0]

		names, err := cfg.ListGoFunctions(filePath)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no functions found in %s", filePath)
		}

		for _, name := range names {
			fn, err := cfg.ExtractGoFunction(filePath, name)
			if err != nil {
				return err
			}
			dom.Analyze(fn, dom.Options{Verify: true, Logger: logger})
			fmt.Printf("verified %s\n", name)
		}
		fmt.Printf("%d function(s) verified\n", len(names))
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringP("graph", "g", "", "Graph document (YAML or JSON) instead of Go source")
	RootCmd.AddCommand(verifyCmd)
}
