// Package main implements the go-dominance-query CLI (gdq).
// It provides commands for extracting control flow graphs and computing
// dominator and post-dominator trees over them.
package main

import (
	"os"

	"github.com/l3aro/go-dominance-query/cmd/gdq/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`gdq version {{.Version}}
`)

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
