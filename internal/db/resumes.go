package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, file_name, file_type, raw_text, parsed_content,
	parse_status, parse_error, created_at, updated_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	err := row.Scan(&r.ID, &r.UserID, &r.FileName, &r.FileType, &r.RawText,
		&r.ParsedContent, &r.ParseStatus, &r.ParseError, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResume inserts a new resume with its extracted text
func (db *DB) CreateResume(ctx context.Context, resume *Resume) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, file_name, file_type, raw_text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		resume.UserID, resume.FileName, resume.FileType, resume.RawText,
	)
	created, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return created, nil
}

// GetResume retrieves a resume owned by the given user
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	resume, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// ListResumes retrieves all resumes for a user, newest first
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	return resumes, nil
}

// DeleteResume removes a resume. Returns false when no row matched.
func (db *DB) DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// SetResumeParseStatus transitions the background parse state
func (db *DB) SetResumeParseStatus(ctx context.Context, id uuid.UUID, status string, parseError *string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET parse_status = $2, parse_error = $3, updated_at = NOW()
		 WHERE id = $1`,
		id, status, parseError,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume parse status: %w", err)
	}
	return nil
}

// SetResumeParsedContent stores the structured resume document and marks the
// parse completed
func (db *DB) SetResumeParsedContent(ctx context.Context, id uuid.UUID, parsedContent []byte) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET parsed_content = $2, parse_status = $3,
		   parse_error = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id, parsedContent, ParseCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to store parsed resume: %w", err)
	}
	return nil
}
