package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvakapadnis/JobCraftAI/internal/config"
	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/ingest"
	"github.com/atharvakapadnis/JobCraftAI/internal/service"
)

const testSecret = "test-secret-key-for-unit-tests"

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: 1})
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	apps    map[uuid.UUID]*db.JobApplication
	resumes map[uuid.UUID]*db.Resume
	letters []db.CoverLetter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:    make(map[uuid.UUID]*db.JobApplication),
		resumes: make(map[uuid.UUID]*db.Resume),
	}
}

func (f *fakeStore) CreateApplication(_ context.Context, app *db.JobApplication) (*db.JobApplication, error) {
	app.ID = uuid.New()
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	if app.ParseStatus == "" {
		app.ParseStatus = db.ParsePending
	}
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeStore) GetApplication(_ context.Context, userID, id uuid.UUID) (*db.JobApplication, error) {
	app, ok := f.apps[id]
	if !ok || app.UserID != userID {
		return nil, nil
	}
	return app, nil
}

func (f *fakeStore) ListApplications(_ context.Context, userID uuid.UUID) ([]db.JobApplication, error) {
	var apps []db.JobApplication
	for _, app := range f.apps {
		if app.UserID == userID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (f *fakeStore) UpdateApplication(_ context.Context, userID, id uuid.UUID, upd db.ApplicationUpdate) (*db.JobApplication, error) {
	app, ok := f.apps[id]
	if !ok || app.UserID != userID {
		return nil, nil
	}
	if upd.Status != nil {
		app.Status = *upd.Status
	}
	if upd.Notes != nil {
		app.Notes = upd.Notes
	}
	return app, nil
}

func (f *fakeStore) DeleteApplication(_ context.Context, userID, id uuid.UUID) (bool, error) {
	app, ok := f.apps[id]
	if !ok || app.UserID != userID {
		return false, nil
	}
	delete(f.apps, id)
	return true, nil
}

func (f *fakeStore) CreateResume(_ context.Context, resume *db.Resume) (*db.Resume, error) {
	resume.ID = uuid.New()
	resume.ParseStatus = db.ParsePending
	f.resumes[resume.ID] = resume
	return resume, nil
}

func (f *fakeStore) GetResume(_ context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	resume, ok := f.resumes[id]
	if !ok || resume.UserID != userID {
		return nil, nil
	}
	return resume, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	var resumes []db.Resume
	for _, resume := range f.resumes {
		if resume.UserID == userID {
			resumes = append(resumes, *resume)
		}
	}
	return resumes, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, userID, id uuid.UUID) (bool, error) {
	resume, ok := f.resumes[id]
	if !ok || resume.UserID != userID {
		return false, nil
	}
	delete(f.resumes, id)
	return true, nil
}

func (f *fakeStore) ListCoverLetters(_ context.Context, _ uuid.UUID) ([]db.CoverLetter, error) {
	return f.letters, nil
}

func (f *fakeStore) ListLinkedInMessages(_ context.Context, _ uuid.UUID) ([]db.LinkedInMessage, error) {
	return nil, nil
}

func (f *fakeStore) ListOptimizations(_ context.Context, _ uuid.UUID) ([]db.ResumeOptimization, error) {
	return nil, nil
}

type fakeCoverLetters struct {
	result *service.CoverLetterResult
	err    error
}

func (f *fakeCoverLetters) Generate(_ context.Context, _, _ uuid.UUID, _ service.CoverLetterRequest) (*service.CoverLetterResult, error) {
	return f.result, f.err
}

type fakeLinkedIn struct {
	msg        *db.LinkedInMessage
	err        error
	sentUserID uuid.UUID
}

func (f *fakeLinkedIn) Generate(_ context.Context, _, _ uuid.UUID, _ service.LinkedInRequest) (*db.LinkedInMessage, error) {
	return f.msg, f.err
}

func (f *fakeLinkedIn) MarkSent(_ context.Context, userID, id uuid.UUID, isSent bool) (*db.LinkedInMessage, error) {
	f.sentUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	f.msg.IsSent = isSent
	return f.msg, nil
}

type fakeOptimizer struct {
	result *service.OptimizationResult
	err    error
}

func (f *fakeOptimizer) Optimize(_ context.Context, _, _, _ uuid.UUID) (*service.OptimizationResult, error) {
	return f.result, f.err
}

type fakeParser struct {
	resumeParses []uuid.UUID
	jobParses    []uuid.UUID
}

func (f *fakeParser) ScheduleResumeParse(resumeID uuid.UUID, _ string) {
	f.resumeParses = append(f.resumeParses, resumeID)
}

func (f *fakeParser) ScheduleJobParse(applicationID uuid.UUID, _ string) {
	f.jobParses = append(f.jobParses, applicationID)
}

type fakeFetcher struct {
	posting *ingest.Posting
	err     error
	calls   int
}

func (f *fakeFetcher) FetchPosting(_ context.Context, url string) (*ingest.Posting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.posting, nil
}

type testEnv struct {
	server  *Server
	handler http.Handler
	store   *fakeStore
	parser  *fakeParser
	fetcher *fakeFetcher
	deps    *Deps
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	parser := &fakeParser{}
	fetcher := &fakeFetcher{}
	deps := &Deps{
		Store:        store,
		CoverLetters: &fakeCoverLetters{},
		LinkedIn:     &fakeLinkedIn{},
		Optimizer:    &fakeOptimizer{},
		Parser:       parser,
		Fetcher:      fetcher,
		JWT:          testJWTService(),
	}
	srv := New(Config{Port: 0}, *deps)
	return &testEnv{
		server:  srv,
		handler: srv.router(deps.JWT),
		store:   store,
		parser:  parser,
		fetcher: fetcher,
		deps:    deps,
	}
}

// rebuild recreates the server after a test swaps one of the fakes in deps.
func (e *testEnv) rebuild() {
	e.server = New(Config{Port: 0}, *e.deps)
	e.handler = e.server.router(e.deps.JWT)
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthNeedsNoAuth(t *testing.T) {
	env := newTestEnv()
	rec := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv()

	t.Run("missing token", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/applications", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/applications", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/applications", signToken(t, uuid.New()), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCreateApplication(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()
	token := signToken(t, userID)

	rec := env.request(t, http.MethodPost, "/applications", token, map[string]any{
		"job_title":       "Senior Software Developer",
		"company_name":    "Acme",
		"job_description": "Build Go services.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created db.JobApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, db.StatusPlanning, created.Status)

	// A background job parse was scheduled for the new application
	assert.Equal(t, []uuid.UUID{created.ID}, env.parser.jobParses)
}

func TestCreateApplicationValidation(t *testing.T) {
	env := newTestEnv()
	token := signToken(t, uuid.New())

	rec := env.request(t, http.MethodPost, "/applications", token, map[string]any{
		"company_name": "Acme",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func TestCreateApplicationFromURL(t *testing.T) {
	env := newTestEnv()
	env.fetcher.posting = &ingest.Posting{Text: "Fetched job description."}
	token := signToken(t, uuid.New())

	rec := env.request(t, http.MethodPost, "/applications", token, map[string]any{
		"job_title":    "Senior Software Developer",
		"company_name": "Acme",
		"job_url":      "https://jobs.example.com/123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, env.fetcher.calls)
	assert.Contains(t, rec.Body.String(), "Fetched job description.")
}

func TestGetApplicationScopedToUser(t *testing.T) {
	env := newTestEnv()
	owner := uuid.New()
	app, err := env.store.CreateApplication(context.Background(), &db.JobApplication{
		UserID:         owner,
		JobTitle:       "Engineer",
		CompanyName:    "Acme",
		JobDescription: "desc",
		Status:         db.StatusPlanning,
	})
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/applications/"+app.ID.String(), signToken(t, owner), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another user cannot see it
	rec = env.request(t, http.MethodGet, "/applications/"+app.ID.String(), signToken(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateResumeSchedulesParse(t *testing.T) {
	env := newTestEnv()
	token := signToken(t, uuid.New())

	rec := env.request(t, http.MethodPost, "/resumes", token, map[string]any{
		"file_name": "resume.pdf",
		"file_type": "pdf",
		"raw_text":  "Jordan Lee. Backend engineer.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, db.ParsePending, created.ParseStatus)
	assert.Equal(t, []uuid.UUID{created.ID}, env.parser.resumeParses)

	// Raw text never leaves the API
	assert.NotContains(t, rec.Body.String(), "Jordan Lee")
}

func TestCreateResumeRejectsUnknownFileType(t *testing.T) {
	env := newTestEnv()
	token := signToken(t, uuid.New())

	rec := env.request(t, http.MethodPost, "/resumes", token, map[string]any{
		"file_name": "resume.exe",
		"file_type": "exe",
		"raw_text":  "text",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
