package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanternlab/lantern/internal/export"
	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/layout"
	"github.com/lanternlab/lantern/pkg/view"
)

var (
	exportFormat string
	exportDir    string
	exportLayout string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "svg", "Artifact format: json, svg, png")
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "Output directory")
	exportCmd.Flags().StringVar(&exportLayout, "algorithm", "circular", "Layout algorithm for positioning")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <snapshot.json>",
	Short: "Render a snapshot file as a JSON, SVG, or PNG artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer file.Close()

	snapshot, err := export.ReadJSON(file)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	positions := layout.Compute(snapshot, layout.Algorithm(exportLayout), layout.Params{})

	nodes := make([]graph.Node, len(snapshot.Nodes()))
	copy(nodes, snapshot.Nodes())
	for i := range nodes {
		nodes[i].Position = positions[nodes[i].ID]
		nodes[i].Opacity = 1
	}

	v := view.View{
		Mode:  view.ModeCityMap,
		Nodes: nodes,
		Edges: snapshot.Edges(),
	}

	path, err := export.NewExporter(exportDir).Export(v, export.Format(exportFormat))
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
