package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/VectorVault/internal/app"
	"github.com/markdave123-py/VectorVault/internal/config"
)

var (
	askTopK  int
	askModel string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question grounded in the indexed documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of context chunks to retrieve")
	askCmd.Flags().StringVar(&askModel, "model", "", "override the configured agent model")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.LoadConfig()
	if askModel != "" {
		cfg.AgentModel = askModel
		cfg.GenModel = askModel
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	answer, err := application.Ask.Ask(ctx, args[0], askTopK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Answer)
	if len(answer.Contexts) > 0 {
		cmd.Println("\nSources:")
		for _, c := range answer.Contexts {
			cmd.Printf("  - %s, chunk #%d (score %.4f)\n", c.Payload.Source, c.Payload.ChunkIndex, c.Score)
		}
	}
	return nil
}
