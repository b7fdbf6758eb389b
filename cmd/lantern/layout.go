package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanternlab/lantern/internal/export"
	"github.com/lanternlab/lantern/pkg/layout"
)

var (
	layoutAlgorithm string
	layoutCenter    string
	layoutSpacing   float64
)

func init() {
	layoutCmd.Flags().StringVar(&layoutAlgorithm, "algorithm", "circular", "Layout algorithm: circular, radial, force, hierarchical")
	layoutCmd.Flags().StringVar(&layoutCenter, "center", "", "Center node id for radial layouts")
	layoutCmd.Flags().Float64Var(&layoutSpacing, "spacing", 0, "Node spacing override")
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout <snapshot.json>",
	Short: "Compute node positions for a snapshot file",
	Long: `Compute node positions for an exported snapshot file and print
them as JSON keyed by node id.

Example:
  lantern layout graph-2026-03-14T09-26-53Z.json --algorithm radial --center e42`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func runLayout(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer file.Close()

	snapshot, err := export.ReadJSON(file)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	positions := layout.Compute(snapshot, layout.Algorithm(layoutAlgorithm), layout.Params{
		CenterID: layoutCenter,
		Spacing:  layoutSpacing,
	})

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(positions)
}
