// Package server provides the HTTP REST API for the job application
// assistant.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/ingest"
	"github.com/atharvakapadnis/JobCraftAI/internal/server/middleware"
	"github.com/atharvakapadnis/JobCraftAI/internal/service"
)

// Store is the data-access surface the handlers need. *db.DB satisfies it.
type Store interface {
	CreateApplication(ctx context.Context, app *db.JobApplication) (*db.JobApplication, error)
	GetApplication(ctx context.Context, userID, id uuid.UUID) (*db.JobApplication, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]db.JobApplication, error)
	UpdateApplication(ctx context.Context, userID, id uuid.UUID, upd db.ApplicationUpdate) (*db.JobApplication, error)
	DeleteApplication(ctx context.Context, userID, id uuid.UUID) (bool, error)

	CreateResume(ctx context.Context, resume *db.Resume) (*db.Resume, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error)

	ListCoverLetters(ctx context.Context, applicationID uuid.UUID) ([]db.CoverLetter, error)
	ListLinkedInMessages(ctx context.Context, applicationID uuid.UUID) ([]db.LinkedInMessage, error)
	ListOptimizations(ctx context.Context, applicationID uuid.UUID) ([]db.ResumeOptimization, error)
}

// CoverLetterGenerator runs the cover letter flow.
type CoverLetterGenerator interface {
	Generate(ctx context.Context, userID, applicationID uuid.UUID, req service.CoverLetterRequest) (*service.CoverLetterResult, error)
}

// LinkedInGenerator runs the LinkedIn message flow.
type LinkedInGenerator interface {
	Generate(ctx context.Context, userID, applicationID uuid.UUID, req service.LinkedInRequest) (*db.LinkedInMessage, error)
	MarkSent(ctx context.Context, userID, id uuid.UUID, isSent bool) (*db.LinkedInMessage, error)
}

// Optimizer runs the resume optimization flow.
type Optimizer interface {
	Optimize(ctx context.Context, userID, applicationID, resumeID uuid.UUID) (*service.OptimizationResult, error)
}

// ParseScheduler starts background structuring jobs.
type ParseScheduler interface {
	ScheduleResumeParse(resumeID uuid.UUID, rawText string)
	ScheduleJobParse(applicationID uuid.UUID, jobDescription string)
}

// PostingFetcher retrieves job posting text by URL.
type PostingFetcher interface {
	FetchPosting(ctx context.Context, url string) (*ingest.Posting, error)
}

// Config holds server configuration
type Config struct {
	Port int
}

// Deps carries the collaborators the server routes to.
type Deps struct {
	Store        Store
	CoverLetters CoverLetterGenerator
	LinkedIn     LinkedInGenerator
	Optimizer    Optimizer
	Parser       ParseScheduler
	Fetcher      PostingFetcher
	JWT          *JWTService
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server

	store        Store
	coverLetters CoverLetterGenerator
	linkedin     LinkedInGenerator
	optimizer    Optimizer
	parser       ParseScheduler
	fetcher      PostingFetcher
	validate     *validator.Validate
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		store:        deps.Store,
		coverLetters: deps.CoverLetters,
		linkedin:     deps.LinkedIn,
		optimizer:    deps.Optimizer,
		parser:       deps.Parser,
		fetcher:      deps.Fetcher,
		validate:     validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.router(deps.JWT))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Generation calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) router(jwtService *JWTService) http.Handler {
	mux := http.NewServeMux()

	// Application endpoints
	mux.HandleFunc("POST /applications", s.handleCreateApplication)
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.HandleFunc("PUT /applications/{id}", s.handleUpdateApplication)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)

	// Resume endpoints
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	// Generation endpoints
	mux.HandleFunc("POST /applications/{id}/cover-letters", s.handleGenerateCoverLetter)
	mux.HandleFunc("GET /applications/{id}/cover-letters", s.handleListCoverLetters)
	mux.HandleFunc("POST /applications/{id}/linkedin-messages", s.handleGenerateLinkedInMessage)
	mux.HandleFunc("GET /applications/{id}/linkedin-messages", s.handleListLinkedInMessages)
	mux.HandleFunc("PATCH /linkedin-messages/{id}/sent", s.handleMarkMessageSent)
	mux.HandleFunc("POST /applications/{id}/optimizations", s.handleOptimizeResume)
	mux.HandleFunc("GET /applications/{id}/optimizations", s.handleListOptimizations)

	protected := middleware.Auth(jwtService.AsTokenValidator())(mux)

	root := http.NewServeMux()
	root.HandleFunc("GET /health", s.handleHealth)
	root.Handle("/", protected)
	return root
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
