package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCoverLetter persists a generated cover letter
func (db *DB) CreateCoverLetter(ctx context.Context, letter *CoverLetter) (*CoverLetter, error) {
	var created CoverLetter
	err := db.pool.QueryRow(ctx,
		`INSERT INTO cover_letters (job_application_id, content, tone, follow_up_answers)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, job_application_id, content, tone, follow_up_answers, created_at`,
		letter.JobApplicationID, letter.Content, letter.Tone, letter.FollowUpAnswers,
	).Scan(&created.ID, &created.JobApplicationID, &created.Content, &created.Tone,
		&created.FollowUpAnswers, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover letter: %w", err)
	}
	return &created, nil
}

// ListCoverLetters retrieves the cover letters for an application, newest first
func (db *DB) ListCoverLetters(ctx context.Context, applicationID uuid.UUID) ([]CoverLetter, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_application_id, content, tone, follow_up_answers, created_at
		 FROM cover_letters WHERE job_application_id = $1 ORDER BY created_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	defer rows.Close()

	var letters []CoverLetter
	for rows.Next() {
		var l CoverLetter
		if err := rows.Scan(&l.ID, &l.JobApplicationID, &l.Content, &l.Tone,
			&l.FollowUpAnswers, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cover letter: %w", err)
		}
		letters = append(letters, l)
	}
	return letters, nil
}

// CreateLinkedInMessage persists a generated LinkedIn message
func (db *DB) CreateLinkedInMessage(ctx context.Context, msg *LinkedInMessage) (*LinkedInMessage, error) {
	var created LinkedInMessage
	err := db.pool.QueryRow(ctx,
		`INSERT INTO linkedin_messages
		 (job_application_id, target_name, target_title, target_company, about_section,
		  message_type, generated_message, character_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, job_application_id, target_name, target_title, target_company,
		   about_section, message_type, generated_message, character_count, is_sent, created_at`,
		msg.JobApplicationID, msg.TargetName, msg.TargetTitle, msg.TargetCompany,
		msg.AboutSection, msg.MessageType, msg.GeneratedMessage, msg.CharacterCount,
	).Scan(&created.ID, &created.JobApplicationID, &created.TargetName, &created.TargetTitle,
		&created.TargetCompany, &created.AboutSection, &created.MessageType,
		&created.GeneratedMessage, &created.CharacterCount, &created.IsSent, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create linkedin message: %w", err)
	}
	return &created, nil
}

// ListLinkedInMessages retrieves the messages for an application, newest first
func (db *DB) ListLinkedInMessages(ctx context.Context, applicationID uuid.UUID) ([]LinkedInMessage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_application_id, target_name, target_title, target_company,
		   about_section, message_type, generated_message, character_count, is_sent, created_at
		 FROM linkedin_messages WHERE job_application_id = $1 ORDER BY created_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list linkedin messages: %w", err)
	}
	defer rows.Close()

	var messages []LinkedInMessage
	for rows.Next() {
		var m LinkedInMessage
		if err := rows.Scan(&m.ID, &m.JobApplicationID, &m.TargetName, &m.TargetTitle,
			&m.TargetCompany, &m.AboutSection, &m.MessageType, &m.GeneratedMessage,
			&m.CharacterCount, &m.IsSent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan linkedin message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// SetLinkedInMessageSent flips the is_sent flag. The update is scoped to
// messages whose application belongs to the user. Returns the updated row,
// or nil when the message does not exist or belongs to someone else.
func (db *DB) SetLinkedInMessageSent(ctx context.Context, userID, id uuid.UUID, isSent bool) (*LinkedInMessage, error) {
	var m LinkedInMessage
	err := db.pool.QueryRow(ctx,
		`UPDATE linkedin_messages SET is_sent = $3
		 FROM job_applications
		 WHERE linkedin_messages.id = $1
		   AND linkedin_messages.job_application_id = job_applications.id
		   AND job_applications.user_id = $2
		 RETURNING linkedin_messages.id, linkedin_messages.job_application_id,
		   target_name, target_title, target_company, about_section, message_type,
		   generated_message, character_count, is_sent, linkedin_messages.created_at`,
		id, userID, isSent,
	).Scan(&m.ID, &m.JobApplicationID, &m.TargetName, &m.TargetTitle, &m.TargetCompany,
		&m.AboutSection, &m.MessageType, &m.GeneratedMessage, &m.CharacterCount,
		&m.IsSent, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update linkedin message: %w", err)
	}
	return &m, nil
}

// CreateOptimization persists a resume optimization result
func (db *DB) CreateOptimization(ctx context.Context, opt *ResumeOptimization) (*ResumeOptimization, error) {
	var created ResumeOptimization
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_optimizations
		 (job_application_id, resume_id, match_score, suggestions, skill_matches)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, job_application_id, resume_id, match_score, suggestions,
		   skill_matches, created_at`,
		opt.JobApplicationID, opt.ResumeID, opt.MatchScore, opt.Suggestions, opt.SkillMatches,
	).Scan(&created.ID, &created.JobApplicationID, &created.ResumeID, &created.MatchScore,
		&created.Suggestions, &created.SkillMatches, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create optimization: %w", err)
	}
	return &created, nil
}

// ListOptimizations retrieves the optimizations for an application, newest first
func (db *DB) ListOptimizations(ctx context.Context, applicationID uuid.UUID) ([]ResumeOptimization, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_application_id, resume_id, match_score, suggestions,
		   skill_matches, created_at
		 FROM resume_optimizations WHERE job_application_id = $1 ORDER BY created_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list optimizations: %w", err)
	}
	defer rows.Close()

	var opts []ResumeOptimization
	for rows.Next() {
		var o ResumeOptimization
		if err := rows.Scan(&o.ID, &o.JobApplicationID, &o.ResumeID, &o.MatchScore,
			&o.Suggestions, &o.SkillMatches, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan optimization: %w", err)
		}
		opts = append(opts, o)
	}
	return opts, nil
}
