package server

import (
	"net/http"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
)

type createApplicationRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	CompanyName    string `json:"company_name" validate:"required"`
	JobDescription string `json:"job_description" validate:"required_without=JobURL"`
	JobURL         string `json:"job_url" validate:"omitempty,url"`
	JobLocation    string `json:"job_location"`
	SalaryRange    string `json:"salary_range"`
	Status         string `json:"status" validate:"omitempty,oneof=planning applied in_review interview_scheduled rejected offer_received accepted declined"`
	Notes          string `json:"notes"`
}

type updateApplicationRequest struct {
	JobTitle       *string `json:"job_title" validate:"omitempty,min=1"`
	CompanyName    *string `json:"company_name" validate:"omitempty,min=1"`
	JobDescription *string `json:"job_description" validate:"omitempty,min=1"`
	JobURL         *string `json:"job_url" validate:"omitempty,url"`
	JobLocation    *string `json:"job_location"`
	SalaryRange    *string `json:"salary_range"`
	Status         *string `json:"status" validate:"omitempty,oneof=planning applied in_review interview_scheduled rejected offer_received accepted declined"`
	Notes          *string `json:"notes"`
}

// handleCreateApplication registers an application and schedules the
// background job-description parse. When only a URL is given the posting
// text is fetched and extracted first.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req createApplicationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if req.JobDescription == "" {
		posting, err := s.fetcher.FetchPosting(r.Context(), req.JobURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
			return
		}
		req.JobDescription = posting.Text
	}

	app := &db.JobApplication{
		UserID:         userID,
		JobTitle:       req.JobTitle,
		CompanyName:    req.CompanyName,
		JobDescription: req.JobDescription,
		Status:         db.StatusPlanning,
	}
	if req.Status != "" {
		app.Status = req.Status
	}
	if req.JobURL != "" {
		app.JobURL = &req.JobURL
	}
	if req.JobLocation != "" {
		app.JobLocation = &req.JobLocation
	}
	if req.SalaryRange != "" {
		app.SalaryRange = &req.SalaryRange
	}
	if req.Notes != "" {
		app.Notes = &req.Notes
	}

	created, err := s.store.CreateApplication(r.Context(), app)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.parser.ScheduleJobParse(created.ID, created.JobDescription)

	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	apps, err := s.store.ListApplications(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	app, err := s.store.GetApplication(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req updateApplicationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	app, err := s.store.UpdateApplication(r.Context(), userID, id, db.ApplicationUpdate{
		JobTitle:       req.JobTitle,
		CompanyName:    req.CompanyName,
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		JobLocation:    req.JobLocation,
		SalaryRange:    req.SalaryRange,
		Status:         req.Status,
		Notes:          req.Notes,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteApplication(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
