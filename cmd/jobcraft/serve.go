package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atharvakapadnis/JobCraftAI/internal/config"
	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/ingest"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/retrieval"
	"github.com/atharvakapadnis/JobCraftAI/internal/server"
	"github.com/atharvakapadnis/JobCraftAI/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for tracking applications and generating documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	embedder, err := retrieval.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	index, err := retrieval.NewQdrantIndex(retrieval.QdrantConfig{
		URL:       cfg.QdrantURL,
		APIKey:    cfg.QdrantAPIKey,
		Dimension: cfg.EmbeddingDim,
	})
	if err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}

	coverLetters := retrieval.NewRetriever(retrieval.CollectionCoverLetters, embedder, index)
	connections := retrieval.NewRetriever(retrieval.CollectionConnections, embedder, index)
	inquiries := retrieval.NewRetriever(retrieval.CollectionJobInquiries, embedder, index)
	suggestions := retrieval.NewRetriever(retrieval.CollectionResumeSuggestions, embedder, index)

	parser := service.NewParseService(database, client)
	defer parser.Wait()

	srv := server.New(server.Config{Port: cfg.Port}, server.Deps{
		Store:        database,
		CoverLetters: service.NewCoverLetterService(database, client, coverLetters),
		LinkedIn:     service.NewLinkedInService(database, client, connections, inquiries),
		Optimizer:    service.NewOptimizationService(database, client, suggestions),
		Parser:       parser,
		Fetcher:      ingest.NewFetcher(),
		JWT:          server.NewJWTService(&cfg.JWT),
	})

	return srv.Start()
}
