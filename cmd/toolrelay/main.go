package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolrelay/toolrelay"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "toolrelay",
	Short: "Utility tool server speaking REST and MCP over websocket",
	Long: "toolrelay serves a catalog of small utility tools (math, strings, " +
		"files, hashing, HTTP fetch) over a REST API and a websocket channel " +
		"speaking a JSON-RPC subset of the Model Context Protocol.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = toolrelay.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("toolrelay version %s\n", toolrelay.Version))

	rootCmd.AddCommand(newServeCmd())
}
