package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/generate"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
)

// coverLetterExamples is how many prior letters are retrieved as context.
const coverLetterExamples = 2

const coverLetterIntro = "Here are some examples of previous successful cover letters for similar roles:"

// CoverLetterRequest carries the user-supplied generation options.
type CoverLetterRequest struct {
	ResumeID              uuid.UUID
	Tone                  string
	PersonalNote          string
	PortfolioURL          string
	EmphasizedSkills      []string
	EmphasizedProjects    []string
	EmphasizedExperiences []string
	FollowUpAnswers       string
}

// CoverLetterResult is either follow-up questions or a persisted letter,
// never both.
type CoverLetterResult struct {
	FollowUpNeeded bool            `json:"follow_up_needed"`
	Questions      []string        `json:"questions,omitempty"`
	CoverLetter    *db.CoverLetter `json:"cover_letter,omitempty"`
}

// CoverLetterService generates and persists cover letters.
type CoverLetterService struct {
	store    Store
	llm      llm.Client
	examples Examples
}

// NewCoverLetterService wires the cover letter generation flow.
func NewCoverLetterService(store Store, client llm.Client, examples Examples) *CoverLetterService {
	return &CoverLetterService{store: store, llm: client, examples: examples}
}

// Generate runs the sentinel-protocol cover letter flow. When follow-up
// answers are present the final letter is generated directly; otherwise the
// model may respond with questions, in which case nothing is persisted.
func (s *CoverLetterService) Generate(ctx context.Context, userID, applicationID uuid.UUID, req CoverLetterRequest) (*CoverLetterResult, error) {
	app, resume, err := s.fetchInputs(ctx, userID, applicationID, req.ResumeID)
	if err != nil {
		return nil, err
	}

	ragContext := s.retrieveContext(ctx, app)

	input := generate.CoverLetterInput{
		ResumeText:            resume.RawText,
		JobDescription:        app.JobDescription,
		JobTitle:              app.JobTitle,
		CompanyName:           app.CompanyName,
		Tone:                  req.Tone,
		PersonalNote:          req.PersonalNote,
		PortfolioURL:          req.PortfolioURL,
		EmphasizedSkills:      req.EmphasizedSkills,
		EmphasizedProjects:    req.EmphasizedProjects,
		EmphasizedExperiences: req.EmphasizedExperiences,
		FollowUpAnswers:       req.FollowUpAnswers,
	}

	if req.FollowUpAnswers != "" {
		letter, err := generate.GenerateFinal(ctx, s.llm, input, ragContext)
		if err != nil {
			return nil, err
		}
		return s.persist(ctx, app, req, letter)
	}

	initial, err := generate.GenerateInitial(ctx, s.llm, input, ragContext)
	if err != nil {
		return nil, err
	}
	if initial.FollowUpNeeded {
		return &CoverLetterResult{FollowUpNeeded: true, Questions: initial.Questions}, nil
	}
	return s.persist(ctx, app, req, initial.CoverLetter)
}

func (s *CoverLetterService) fetchInputs(ctx context.Context, userID, applicationID, resumeID uuid.UUID) (*db.JobApplication, *db.Resume, error) {
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
		return nil, nil, err
	}

	if app == nil {
		return nil, nil, &NotFoundError{Resource: "job application", ID: applicationID.String()}
	}
	if resume == nil {
		return nil, nil, &NotFoundError{Resource: "resume", ID: resumeID.String()}
	}
	return app, resume, nil
}

// retrieveContext fetches prior letters for similar roles. Retrieval
// failures degrade to an empty context rather than failing the request.
func (s *CoverLetterService) retrieveContext(ctx context.Context, app *db.JobApplication) string {
	examples, err := s.examples.Retrieve(ctx, ragQuery(app), coverLetterExamples, nil)
	if err != nil {
		return ""
	}
	return generate.RenderContext(coverLetterIntro, examples)
}

func (s *CoverLetterService) persist(ctx context.Context, app *db.JobApplication, req CoverLetterRequest, content string) (*CoverLetterResult, error) {
	letter := &db.CoverLetter{
		JobApplicationID: app.ID,
		Content:          content,
	}
	if req.Tone != "" {
		letter.Tone = &req.Tone
	}
	if req.FollowUpAnswers != "" {
		letter.FollowUpAnswers = &req.FollowUpAnswers
	}

	created, err := s.store.CreateCoverLetter(ctx, letter)
	if err != nil {
		return nil, err
	}

	addExample(ctx, s.examples, content, map[string]string{
		"cover_letter_id":    created.ID.String(),
		"job_application_id": app.ID.String(),
		"job_title":          app.JobTitle,
		"company_name":       app.CompanyName,
	})

	return &CoverLetterResult{CoverLetter: created}, nil
}

func ragQuery(app *db.JobApplication) string {
	return fmt.Sprintf("%s at %s\n%s", app.JobTitle, app.CompanyName, app.JobDescription)
}
