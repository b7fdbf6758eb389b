package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanternlab/lantern/internal/upstream"
	"github.com/lanternlab/lantern/internal/util"
)

var discoverUpstreamURL string

func init() {
	discoverCmd.Flags().StringVar(&discoverUpstreamURL, "upstream", "", "Graph service base URL (defaults to UPSTREAM_URL)")
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover <entityA> <entityC>",
	Short: "Run hypothesis discovery between two entities",
	Long: `Ask the graph service for hypothesis paths connecting two
entities through shared intermediates and print them as JSON.

Example:
  lantern discover fish-oil raynauds-syndrome`,
	Args: cobra.ExactArgs(2),
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	baseURL := discoverUpstreamURL
	if baseURL == "" {
		baseURL = util.GetEnvString("UPSTREAM_URL", "http://localhost:9000")
	}

	client, err := upstream.NewClient(upstream.NewClientParams{BaseURL: baseURL})
	if err != nil {
		return err
	}

	hypotheses, err := client.DiscoverHypotheses(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(hypotheses) == 0 {
		fmt.Fprintln(os.Stderr, "no hypotheses found")
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(hypotheses)
}
