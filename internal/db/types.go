package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Application status constants
const (
	StatusPlanning           = "planning"
	StatusApplied            = "applied"
	StatusInReview           = "in_review"
	StatusInterviewScheduled = "interview_scheduled"
	StatusRejected           = "rejected"
	StatusOfferReceived      = "offer_received"
	StatusAccepted           = "accepted"
	StatusDeclined           = "declined"
)

// Parse status constants for background extraction jobs
const (
	ParsePending    = "pending"
	ParseProcessing = "processing"
	ParseCompleted  = "completed"
	ParseFailed     = "failed"
)

// LinkedIn message type constants
const (
	MessageConnectionRequest = "connection_request"
	MessageJobInquiry        = "job_inquiry"
)

// JobApplication represents a tracked job application
type JobApplication struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	JobTitle       string          `json:"job_title"`
	CompanyName    string          `json:"company_name"`
	JobDescription string          `json:"job_description"`
	JobURL         *string         `json:"job_url,omitempty"`
	JobLocation    *string         `json:"job_location,omitempty"`
	SalaryRange    *string         `json:"salary_range,omitempty"`
	Status         string          `json:"status"`
	AppliedDate    *time.Time      `json:"applied_date,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	ParsedJob      json.RawMessage `json:"parsed_job,omitempty"`
	ParseStatus    string          `json:"parse_status"`
	ParseError     *string         `json:"parse_error,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Resume represents an uploaded resume with its extracted text
type Resume struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	FileName      string          `json:"file_name"`
	FileType      string          `json:"file_type"`
	RawText       string          `json:"-"` // Don't serialize (large)
	ParsedContent json.RawMessage `json:"parsed_content,omitempty"`
	ParseStatus   string          `json:"parse_status"`
	ParseError    *string         `json:"parse_error,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CoverLetter represents a generated cover letter for an application
type CoverLetter struct {
	ID               uuid.UUID `json:"id"`
	JobApplicationID uuid.UUID `json:"job_application_id"`
	Content          string    `json:"content"`
	Tone             *string   `json:"tone,omitempty"`
	FollowUpAnswers  *string   `json:"follow_up_answers,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// LinkedInMessage represents a generated LinkedIn message for an application
type LinkedInMessage struct {
	ID               uuid.UUID `json:"id"`
	JobApplicationID uuid.UUID `json:"job_application_id"`
	TargetName       string    `json:"target_name"`
	TargetTitle      *string   `json:"target_title,omitempty"`
	TargetCompany    *string   `json:"target_company,omitempty"`
	AboutSection     *string   `json:"about_section,omitempty"`
	MessageType      string    `json:"message_type"`
	GeneratedMessage string    `json:"generated_message"`
	CharacterCount   int       `json:"character_count"`
	IsSent           bool      `json:"is_sent"`
	CreatedAt        time.Time `json:"created_at"`
}

// ResumeOptimization represents a resume-vs-job analysis result
type ResumeOptimization struct {
	ID               uuid.UUID       `json:"id"`
	JobApplicationID uuid.UUID       `json:"job_application_id"`
	ResumeID         uuid.UUID       `json:"resume_id"`
	MatchScore       float64         `json:"match_score"`
	Suggestions      json.RawMessage `json:"suggestions"`
	SkillMatches     json.RawMessage `json:"skill_matches,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
