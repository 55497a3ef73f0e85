package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/generate"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
)

// optimizationExamples is how many prior suggestion sets are retrieved.
const optimizationExamples = 3

const optimizationIntro = "Here are suggestions that worked well for similar roles:"

// OptimizationResult pairs the persisted record with the structured analysis.
type OptimizationResult struct {
	Record       *db.ResumeOptimization `json:"record"`
	MatchScore   float64                `json:"match_score"`
	Suggestions  []generate.Suggestion  `json:"suggestions"`
	SkillMatches []generate.SkillMatch  `json:"skill_matches,omitempty"`
}

// OptimizationService analyzes a parsed resume against a job description.
type OptimizationService struct {
	store    Store
	llm      llm.Client
	examples Examples
}

// NewOptimizationService wires the resume optimization flow.
func NewOptimizationService(store Store, client llm.Client, examples Examples) *OptimizationService {
	return &OptimizationService{store: store, llm: client, examples: examples}
}

// Optimize scores the resume against the application's job description,
// persists the result, and feeds the suggestions back into the collection.
// The resume must have completed background parsing.
func (s *OptimizationService) Optimize(ctx context.Context, userID, applicationID, resumeID uuid.UUID) (*OptimizationResult, error) {
	var (
		app    *db.JobApplication
		resume *db.Resume
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		app, err = s.store.GetApplication(gctx, userID, applicationID)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = s.store.GetResume(gctx, userID, resumeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if app == nil {
		return nil, &NotFoundError{Resource: "job application", ID: applicationID.String()}
	}
	if resume == nil {
		return nil, &NotFoundError{Resource: "resume", ID: resumeID.String()}
	}
	if resume.ParseStatus != db.ParseCompleted {
		return nil, &PreconditionError{
			Message: fmt.Sprintf("resume parse status is %q, must be %q", resume.ParseStatus, db.ParseCompleted),
		}
	}

	ragContext := s.retrieveContext(ctx, app)

	opt, err := generate.GenerateOptimization(ctx, s.llm, resume.RawText, app.JobDescription, ragContext)
	if err != nil {
		return nil, err
	}

	suggestions, err := json.Marshal(opt.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	skillMatches, err := json.Marshal(opt.SkillMatches)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skill matches: %w", err)
	}

	created, err := s.store.CreateOptimization(ctx, &db.ResumeOptimization{
		JobApplicationID: app.ID,
		ResumeID:         resume.ID,
		MatchScore:       opt.MatchScore,
		Suggestions:      suggestions,
		SkillMatches:     skillMatches,
	})
	if err != nil {
		return nil, err
	}

	addExample(ctx, s.examples, opt.SuggestionsText(), map[string]string{
		"optimization_id":    created.ID.String(),
		"job_application_id": app.ID.String(),
		"job_title":          app.JobTitle,
		"company_name":       app.CompanyName,
	})

	return &OptimizationResult{
		Record:       created,
		MatchScore:   opt.MatchScore,
		Suggestions:  opt.Suggestions,
		SkillMatches: opt.SkillMatches,
	}, nil
}

func (s *OptimizationService) retrieveContext(ctx context.Context, app *db.JobApplication) string {
	examples, err := s.examples.Retrieve(ctx, ragQuery(app), optimizationExamples, nil)
	if err != nil {
		return ""
	}
	return generate.RenderContext(optimizationIntro, examples)
}
