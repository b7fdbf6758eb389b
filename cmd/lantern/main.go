// Package main provides the lantern CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lanternlab/lantern/internal/util"
	"github.com/lanternlab/lantern/pkg/logger"
	"github.com/lanternlab/lantern/pkg/logger/console"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	util.LoadEnv()
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	}))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "Knowledge graph layout, export, and discovery tooling",
	Long: `lantern works with graph snapshot files and a running graph
service: compute layouts offline, export snapshots as JSON, SVG, or
PNG artifacts, and run hypothesis discovery between two entities.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}
