package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/VectorVault/internal/app"
	"github.com/markdave123-py/VectorVault/internal/config"
	objectclient "github.com/markdave123-py/VectorVault/internal/core/object-client"
)

var (
	ingestDataDir string
	ingestFromS3  bool
	ingestPrefix  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest documents into the vector store",
	Long: `Extracts text from every supported file in the data directory, splits it
into chunks, embeds them and upserts the points into the vector store.
With --from-s3 the bucket contents are downloaded into the data directory
first.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDataDir, "data-dir", "", "directory of documents to ingest (default from DATA_DIR)")
	ingestCmd.Flags().BoolVar(&ingestFromS3, "from-s3", false, "download the configured S3 bucket into the data directory first")
	ingestCmd.Flags().StringVar(&ingestPrefix, "prefix", "", "S3 key prefix to sync (with --from-s3)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	dataDir := cfg.DataDir
	if ingestDataDir != "" {
		dataDir = ingestDataDir
	}

	if ingestFromS3 {
		s3Client, err := objectclient.NewS3Client(ctx, cfg)
		if err != nil {
			return fmt.Errorf("s3 client: %w", err)
		}
		n, err := s3Client.SyncToDir(ctx, ingestPrefix, dataDir)
		if err != nil {
			return fmt.Errorf("s3 sync: %w", err)
		}
		cmd.Printf("Downloaded %d objects from S3.\n", n)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	report, err := application.Ingestor.Ingest(ctx, dataDir)
	if err != nil {
		return err
	}

	cmd.Printf("Ingestion complete: %d points, %d files succeeded, %d failed.\n",
		report.TotalPoints, report.FilesSucceeded, report.FilesFailed)
	return nil
}
