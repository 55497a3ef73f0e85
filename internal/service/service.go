// Package service orchestrates data access, retrieval and generation for
// each artifact type, and runs the background parse jobs.
package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/retrieval"
)

// Store is the data-access surface the services need. *db.DB satisfies it.
type Store interface {
	GetApplication(ctx context.Context, userID, id uuid.UUID) (*db.JobApplication, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error)

	CreateCoverLetter(ctx context.Context, letter *db.CoverLetter) (*db.CoverLetter, error)
	CreateLinkedInMessage(ctx context.Context, msg *db.LinkedInMessage) (*db.LinkedInMessage, error)
	SetLinkedInMessageSent(ctx context.Context, userID, id uuid.UUID, isSent bool) (*db.LinkedInMessage, error)
	CreateOptimization(ctx context.Context, opt *db.ResumeOptimization) (*db.ResumeOptimization, error)

	SetResumeParseStatus(ctx context.Context, id uuid.UUID, status string, parseError *string) error
	SetResumeParsedContent(ctx context.Context, id uuid.UUID, parsedContent []byte) error
	SetApplicationParseStatus(ctx context.Context, id uuid.UUID, status string, parseError *string) error
	SetApplicationParsedJob(ctx context.Context, id uuid.UUID, parsedJob []byte) error
}

// Examples is the per-collection retrieval surface. *retrieval.Retriever
// satisfies it.
type Examples interface {
	Add(ctx context.Context, text string, metadata map[string]string, id string) (string, error)
	Retrieve(ctx context.Context, query string, k int, filter map[string]string) ([]retrieval.Example, error)
}

// addExample feeds a generated artifact back into its collection. Failures
// never fail the originating request.
func addExample(ctx context.Context, examples Examples, text string, metadata map[string]string) {
	if _, err := examples.Add(ctx, text, metadata, ""); err != nil {
		log.Printf("failed to add example to collection: %v", err)
	}
}
