// Package commands provides the CLI commands for the go-dominance-query tool.
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gdq",
	Short: "go-dominance-query - Dominator analysis over control flow graphs",
	Long: `go-dominance-query computes dominance relationships for a function's
control flow graph: the dominator tree and the post-dominator tree.

Commands:
  cfg         Extract and display a function's control flow graph
  dom         Compute the dominator tree of a function
  postdom     Compute the post-dominator tree of a function
  verify      Cross-check the fast solver against the classical solver
  init        Initialize gdq configuration interactively

Functions come either from Go source (gdq dom file.go myFunc) or from a
graph document in YAML or JSON (gdq dom --graph cfg.yaml).

Use "gdq [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}
