package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/VectorVault/internal/app"
	"github.com/markdave123-py/VectorVault/internal/config"
)

var searchTopK int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the index by semantic similarity",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from DEFAULT_TOP_K)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := app.NewApp(ctx, config.LoadConfig())
	if err != nil {
		return err
	}
	defer application.Close()

	results, err := application.Search.Search(ctx, args[0], searchTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, r := range results {
		cmd.Printf("[%d] %s, chunk #%d (score %.4f)", i+1, r.Payload.Source, r.Payload.ChunkIndex, r.Score)
		if r.Payload.Page != nil {
			cmd.Printf(", page %d", *r.Payload.Page)
		}
		cmd.Println()
		cmd.Printf("    %s\n\n", r.Payload.Text)
	}
	return nil
}
