package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/parse"
)

// parseTimeout bounds a single background extraction call.
const parseTimeout = 2 * time.Minute

// ParseService runs fire-and-forget structuring jobs for resumes and job
// descriptions. Jobs are detached from the request context: the caller polls
// parse_status instead of waiting. Failures store the error on the record
// and are otherwise swallowed. There is no retry.
type ParseService struct {
	store Store
	llm   llm.Client

	wg sync.WaitGroup
}

// NewParseService wires the background parsing jobs.
func NewParseService(store Store, client llm.Client) *ParseService {
	return &ParseService{store: store, llm: client}
}

// Wait blocks until all scheduled jobs have finished. Used on shutdown and
// in tests.
func (s *ParseService) Wait() {
	s.wg.Wait()
}

// ScheduleResumeParse starts a detached job structuring the resume text.
func (s *ParseService) ScheduleResumeParse(resumeID uuid.UUID, rawText string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()
		s.parseResume(ctx, resumeID, rawText)
	}()
}

// ScheduleJobParse starts a detached job structuring the job description.
func (s *ParseService) ScheduleJobParse(applicationID uuid.UUID, jobDescription string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()
		s.parseJob(ctx, applicationID, jobDescription)
	}()
}

func (s *ParseService) parseResume(ctx context.Context, resumeID uuid.UUID, rawText string) {
	if err := s.store.SetResumeParseStatus(ctx, resumeID, db.ParseProcessing, nil); err != nil {
		log.Printf("resume parse %s: failed to mark processing: %v", resumeID, err)
		return
	}

	parsed, err := parse.ParseResume(ctx, s.llm, rawText)
	if err != nil {
		s.failResume(ctx, resumeID, err)
		return
	}

	doc, err := json.Marshal(parsed)
	if err != nil {
		s.failResume(ctx, resumeID, err)
		return
	}

	if err := s.store.SetResumeParsedContent(ctx, resumeID, doc); err != nil {
		log.Printf("resume parse %s: failed to store result: %v", resumeID, err)
	}
}

func (s *ParseService) failResume(ctx context.Context, resumeID uuid.UUID, cause error) {
	log.Printf("resume parse %s failed: %v", resumeID, cause)
	msg := cause.Error()
	if err := s.store.SetResumeParseStatus(ctx, resumeID, db.ParseFailed, &msg); err != nil {
		log.Printf("resume parse %s: failed to mark failed: %v", resumeID, err)
	}
}

func (s *ParseService) parseJob(ctx context.Context, applicationID uuid.UUID, jobDescription string) {
	if err := s.store.SetApplicationParseStatus(ctx, applicationID, db.ParseProcessing, nil); err != nil {
		log.Printf("job parse %s: failed to mark processing: %v", applicationID, err)
		return
	}

	parsed, err := parse.ParseJobDescription(ctx, s.llm, jobDescription)
	if err != nil {
		s.failJob(ctx, applicationID, err)
		return
	}

	doc, err := json.Marshal(parsed)
	if err != nil {
		s.failJob(ctx, applicationID, err)
		return
	}

	if err := s.store.SetApplicationParsedJob(ctx, applicationID, doc); err != nil {
		log.Printf("job parse %s: failed to store result: %v", applicationID, err)
	}
}

func (s *ParseService) failJob(ctx context.Context, applicationID uuid.UUID, cause error) {
	log.Printf("job parse %s failed: %v", applicationID, cause)
	msg := cause.Error()
	if err := s.store.SetApplicationParseStatus(ctx, applicationID, db.ParseFailed, &msg); err != nil {
		log.Printf("job parse %s: failed to mark failed: %v", applicationID, err)
	}
}
