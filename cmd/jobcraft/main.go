// Package main provides the entry point for the JobCraftAI HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobcraft",
	Short: "JobCraftAI HTTP API Server",
	Long:  "JobCraftAI tracks job applications and generates tailored cover letters, LinkedIn messages and resume optimizations via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
