package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
)

func TestScheduleResumeParseCompletes(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	resume := store.addResume(userID, db.ParsePending)
	client := &fakeLLM{response: `{"contact_info": {"name": "Jordan Lee"}, "summary": "Backend engineer."}`}

	svc := NewParseService(store, client)
	svc.ScheduleResumeParse(resume.ID, resume.RawText)
	svc.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{db.ParseProcessing, db.ParseCompleted}, store.resumeStatuses)
	assert.Equal(t, db.ParseCompleted, resume.ParseStatus)
	assert.Nil(t, resume.ParseError)
	assert.Contains(t, string(resume.ParsedContent), "Jordan Lee")
}

func TestScheduleResumeParseStoresFailureReason(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	resume := store.addResume(userID, db.ParsePending)
	client := &fakeLLM{err: errors.New("model unavailable")}

	svc := NewParseService(store, client)
	svc.ScheduleResumeParse(resume.ID, resume.RawText)
	svc.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{db.ParseProcessing, db.ParseFailed}, store.resumeStatuses)
	assert.Equal(t, db.ParseFailed, resume.ParseStatus)
	require.NotNil(t, resume.ParseError)
	assert.Contains(t, *resume.ParseError, "model unavailable")
}

func TestScheduleJobParseCompletes(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	app := store.addApplication(userID)
	client := &fakeLLM{response: `{"required_skills": ["Go"], "responsibilities": ["Build services"]}`}

	svc := NewParseService(store, client)
	svc.ScheduleJobParse(app.ID, app.JobDescription)
	svc.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{db.ParseProcessing, db.ParseCompleted}, store.jobStatuses)
	assert.Contains(t, string(app.ParsedJob), "Go")
}

func TestScheduleJobParseStoresFailureReason(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	app := store.addApplication(userID)
	client := &fakeLLM{response: "not json at all"}

	svc := NewParseService(store, client)
	svc.ScheduleJobParse(app.ID, app.JobDescription)
	svc.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, db.ParseFailed, app.ParseStatus)
	require.NotNil(t, app.ParseError)
	assert.NotEmpty(t, *app.ParseError)
}
