// vaultctl is the command-line entry point for the pipeline: ingest a
// document directory, search the index, or ask a grounded question.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vaultctl",
	Short: "Document ingestion and retrieval over a vector store",
	Long: `vaultctl ingests documents (PDF, TXT, MD, DOCX) into a vector store,
searches the index by semantic similarity, and answers questions grounded
in the retrieved chunks.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
