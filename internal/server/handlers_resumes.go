package server

import (
	"net/http"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
)

// Resume registration accepts pre-extracted text; turning PDF or DOCX files
// into text happens upstream of this API.
type createResumeRequest struct {
	FileName string `json:"file_name" validate:"required"`
	FileType string `json:"file_type" validate:"required,oneof=pdf docx txt"`
	RawText  string `json:"raw_text" validate:"required"`
}

// handleCreateResume stores the resume and schedules the background parse.
// Callers poll parse_status on the returned record.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req createResumeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	created, err := s.store.CreateResume(r.Context(), &db.Resume{
		UserID:   userID,
		FileName: req.FileName,
		FileType: req.FileType,
		RawText:  req.RawText,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.parser.ScheduleResumeParse(created.ID, created.RawText)

	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
