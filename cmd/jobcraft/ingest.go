package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atharvakapadnis/JobCraftAI/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <url>",
	Short: "Fetch a job posting and print the extracted text",
	Long:  `Fetch a job posting URL, strip page noise, and print the plain posting text. Useful for inspecting what application creation from a URL would store.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	posting, err := ingest.NewFetcher().FetchPosting(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(posting.Text)
	return nil
}
