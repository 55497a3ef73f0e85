package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/retrieval"
)

// fakeLLM counts completions so tests can assert no upstream call happened.
type fakeLLM struct {
	response string
	err      error

	mu      sync.Mutex
	calls   int
	lastReq llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type addedExample struct {
	text     string
	metadata map[string]string
}

// fakeExamples records additions and serves canned retrievals.
type fakeExamples struct {
	retrieveResult []retrieval.Example
	retrieveErr    error

	added      []addedExample
	lastQuery  string
	lastK      int
	lastFilter map[string]string
}

func (f *fakeExamples) Add(_ context.Context, text string, metadata map[string]string, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	f.added = append(f.added, addedExample{text: text, metadata: metadata})
	return id, nil
}

func (f *fakeExamples) Retrieve(_ context.Context, query string, k int, filter map[string]string) ([]retrieval.Example, error) {
	f.lastQuery = query
	f.lastK = k
	f.lastFilter = filter
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.retrieveResult, nil
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu sync.Mutex

	apps    map[uuid.UUID]*db.JobApplication
	resumes map[uuid.UUID]*db.Resume

	coverLetters  []*db.CoverLetter
	messages      []*db.LinkedInMessage
	optimizations []*db.ResumeOptimization

	// Observed parse transitions, in order
	resumeStatuses []string
	jobStatuses    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:    make(map[uuid.UUID]*db.JobApplication),
		resumes: make(map[uuid.UUID]*db.Resume),
	}
}

func (f *fakeStore) addApplication(userID uuid.UUID) *db.JobApplication {
	app := &db.JobApplication{
		ID:             uuid.New(),
		UserID:         userID,
		JobTitle:       "Senior Software Developer",
		CompanyName:    "Acme",
		JobDescription: "Build Go services.",
		Status:         db.StatusPlanning,
		ParseStatus:    db.ParsePending,
	}
	f.apps[app.ID] = app
	return app
}

func (f *fakeStore) addResume(userID uuid.UUID, parseStatus string) *db.Resume {
	resume := &db.Resume{
		ID:          uuid.New(),
		UserID:      userID,
		FileName:    "resume.pdf",
		FileType:    "pdf",
		RawText:     "Jordan Lee. Backend engineer. Go, PostgreSQL.",
		ParseStatus: parseStatus,
	}
	f.resumes[resume.ID] = resume
	return resume
}

func (f *fakeStore) GetApplication(_ context.Context, userID, id uuid.UUID) (*db.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok || app.UserID != userID {
		return nil, nil
	}
	return app, nil
}

func (f *fakeStore) GetResume(_ context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resume, ok := f.resumes[id]
	if !ok || resume.UserID != userID {
		return nil, nil
	}
	return resume, nil
}

func (f *fakeStore) CreateCoverLetter(_ context.Context, letter *db.CoverLetter) (*db.CoverLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	letter.ID = uuid.New()
	f.coverLetters = append(f.coverLetters, letter)
	return letter, nil
}

func (f *fakeStore) CreateLinkedInMessage(_ context.Context, msg *db.LinkedInMessage) (*db.LinkedInMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = uuid.New()
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeStore) SetLinkedInMessageSent(_ context.Context, userID, id uuid.UUID, isSent bool) (*db.LinkedInMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range f.messages {
		if msg.ID != id {
			continue
		}
		app, ok := f.apps[msg.JobApplicationID]
		if !ok || app.UserID != userID {
			return nil, nil
		}
		msg.IsSent = isSent
		return msg, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateOptimization(_ context.Context, opt *db.ResumeOptimization) (*db.ResumeOptimization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	opt.ID = uuid.New()
	f.optimizations = append(f.optimizations, opt)
	return opt, nil
}

func (f *fakeStore) SetResumeParseStatus(_ context.Context, id uuid.UUID, status string, parseError *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resume, ok := f.resumes[id]; ok {
		resume.ParseStatus = status
		resume.ParseError = parseError
	}
	f.resumeStatuses = append(f.resumeStatuses, status)
	return nil
}

func (f *fakeStore) SetResumeParsedContent(_ context.Context, id uuid.UUID, parsedContent []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resume, ok := f.resumes[id]; ok {
		resume.ParsedContent = parsedContent
		resume.ParseStatus = db.ParseCompleted
		resume.ParseError = nil
	}
	f.resumeStatuses = append(f.resumeStatuses, db.ParseCompleted)
	return nil
}

func (f *fakeStore) SetApplicationParseStatus(_ context.Context, id uuid.UUID, status string, parseError *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app, ok := f.apps[id]; ok {
		app.ParseStatus = status
		app.ParseError = parseError
	}
	f.jobStatuses = append(f.jobStatuses, status)
	return nil
}

func (f *fakeStore) SetApplicationParsedJob(_ context.Context, id uuid.UUID, parsedJob []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app, ok := f.apps[id]; ok {
		app.ParsedJob = parsedJob
		app.ParseStatus = db.ParseCompleted
		app.ParseError = nil
	}
	f.jobStatuses = append(f.jobStatuses, db.ParseCompleted)
	return nil
}
