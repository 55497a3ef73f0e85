package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/atharvakapadnis/JobCraftAI/internal/service"
)

type coverLetterRequest struct {
	ResumeID              uuid.UUID `json:"resume_id" validate:"required"`
	Tone                  string    `json:"tone"`
	PersonalNote          string    `json:"personal_note"`
	PortfolioURL          string    `json:"portfolio_url" validate:"omitempty,url"`
	EmphasizedSkills      []string  `json:"emphasized_skills"`
	EmphasizedProjects    []string  `json:"emphasized_projects"`
	EmphasizedExperiences []string  `json:"emphasized_experiences"`
	FollowUpAnswers       string    `json:"follow_up_answers"`
}

type linkedinMessageRequest struct {
	MessageType   string `json:"message_type" validate:"required,oneof=connection_request job_inquiry"`
	TargetName    string `json:"target_name" validate:"required"`
	TargetTitle   string `json:"target_title"`
	TargetCompany string `json:"target_company"`
	AboutSection  string `json:"about_section"`
}

type markSentRequest struct {
	IsSent *bool `json:"is_sent" validate:"required"`
}

type optimizationRequest struct {
	ResumeID uuid.UUID `json:"resume_id" validate:"required"`
}

// handleGenerateCoverLetter runs the cover letter flow. The response is
// either follow-up questions or a persisted letter.
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	applicationID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req coverLetterRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.coverLetters.Generate(r.Context(), userID, applicationID, service.CoverLetterRequest{
		ResumeID:              req.ResumeID,
		Tone:                  req.Tone,
		PersonalNote:          req.PersonalNote,
		PortfolioURL:          req.PortfolioURL,
		EmphasizedSkills:      req.EmphasizedSkills,
		EmphasizedProjects:    req.EmphasizedProjects,
		EmphasizedExperiences: req.EmphasizedExperiences,
		FollowUpAnswers:       req.FollowUpAnswers,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.FollowUpNeeded {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, result)
}

func (s *Server) handleListCoverLetters(w http.ResponseWriter, r *http.Request) {
	if !s.requireApplication(w, r) {
		return
	}
	applicationID, _ := s.pathID(w, r)

	letters, err := s.store.ListCoverLetters(r.Context(), applicationID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cover_letters": letters,
		"count":         len(letters),
	})
}

func (s *Server) handleGenerateLinkedInMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	applicationID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req linkedinMessageRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := s.linkedin.Generate(r.Context(), userID, applicationID, service.LinkedInRequest{
		MessageType:   req.MessageType,
		TargetName:    req.TargetName,
		TargetTitle:   req.TargetTitle,
		TargetCompany: req.TargetCompany,
		AboutSection:  req.AboutSection,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, msg)
}

func (s *Server) handleListLinkedInMessages(w http.ResponseWriter, r *http.Request) {
	if !s.requireApplication(w, r) {
		return
	}
	applicationID, _ := s.pathID(w, r)

	messages, err := s.store.ListLinkedInMessages(r.Context(), applicationID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"messages": messages,
		"count":    len(messages),
	})
}

func (s *Server) handleMarkMessageSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req markSentRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := s.linkedin.MarkSent(r.Context(), userID, id, *req.IsSent)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, msg)
}

func (s *Server) handleOptimizeResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	applicationID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req optimizationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.optimizer.Optimize(r.Context(), userID, applicationID, req.ResumeID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}

func (s *Server) handleListOptimizations(w http.ResponseWriter, r *http.Request) {
	if !s.requireApplication(w, r) {
		return
	}
	applicationID, _ := s.pathID(w, r)

	opts, err := s.store.ListOptimizations(r.Context(), applicationID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"optimizations": opts,
		"count":         len(opts),
	})
}

// requireApplication verifies the {id} application exists for the caller.
// Generated-document listings hang off the application, so ownership is
// checked here rather than per row.
func (s *Server) requireApplication(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := s.userID(w, r)
	if !ok {
		return false
	}
	applicationID, ok := s.pathID(w, r)
	if !ok {
		return false
	}

	app, err := s.store.GetApplication(r.Context(), userID, applicationID)
	if err != nil {
		s.serviceError(w, err)
		return false
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return false
	}
	return true
}
