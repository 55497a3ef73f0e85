package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, job_title, company_name, job_description, job_url,
	job_location, salary_range, status, applied_date, notes, parsed_job,
	parse_status, parse_error, created_at, updated_at`

func scanApplication(row pgx.Row) (*JobApplication, error) {
	var a JobApplication
	err := row.Scan(&a.ID, &a.UserID, &a.JobTitle, &a.CompanyName, &a.JobDescription,
		&a.JobURL, &a.JobLocation, &a.SalaryRange, &a.Status, &a.AppliedDate,
		&a.Notes, &a.ParsedJob, &a.ParseStatus, &a.ParseError, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new job application and returns the stored row
func (db *DB) CreateApplication(ctx context.Context, app *JobApplication) (*JobApplication, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications
		 (user_id, job_title, company_name, job_description, job_url, job_location,
		  salary_range, status, applied_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+applicationColumns,
		app.UserID, app.JobTitle, app.CompanyName, app.JobDescription, app.JobURL,
		app.JobLocation, app.SalaryRange, app.Status, app.AppliedDate, app.Notes,
	)
	created, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// GetApplication retrieves an application owned by the given user
func (db *DB) GetApplication(ctx context.Context, userID, id uuid.UUID) (*JobApplication, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplications retrieves all applications for a user, newest first
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]JobApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications
		 WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

// ApplicationUpdate holds the mutable fields of an application. Nil fields
// are left unchanged.
type ApplicationUpdate struct {
	JobTitle       *string
	CompanyName    *string
	JobDescription *string
	JobURL         *string
	JobLocation    *string
	SalaryRange    *string
	Status         *string
	Notes          *string
}

// UpdateApplication applies a partial update and returns the updated row,
// or nil when the application does not exist for the user
func (db *DB) UpdateApplication(ctx context.Context, userID, id uuid.UUID, upd ApplicationUpdate) (*JobApplication, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE job_applications SET
		   job_title = COALESCE($3, job_title),
		   company_name = COALESCE($4, company_name),
		   job_description = COALESCE($5, job_description),
		   job_url = COALESCE($6, job_url),
		   job_location = COALESCE($7, job_location),
		   salary_range = COALESCE($8, salary_range),
		   status = COALESCE($9, status),
		   notes = COALESCE($10, notes),
		   updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+applicationColumns,
		id, userID, upd.JobTitle, upd.CompanyName, upd.JobDescription, upd.JobURL,
		upd.JobLocation, upd.SalaryRange, upd.Status, upd.Notes,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// DeleteApplication removes an application and its generated documents.
// Returns false when no row matched.
func (db *DB) DeleteApplication(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM job_applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// SetApplicationParseStatus transitions the background job-parse state
func (db *DB) SetApplicationParseStatus(ctx context.Context, id uuid.UUID, status string, parseError *string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET parse_status = $2, parse_error = $3, updated_at = NOW()
		 WHERE id = $1`,
		id, status, parseError,
	)
	if err != nil {
		return fmt.Errorf("failed to set application parse status: %w", err)
	}
	return nil
}

// SetApplicationParsedJob stores the structured job document and marks the
// parse completed
func (db *DB) SetApplicationParsedJob(ctx context.Context, id uuid.UUID, parsedJob []byte) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET parsed_job = $2, parse_status = $3,
		   parse_error = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id, parsedJob, ParseCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to store parsed job: %w", err)
	}
	return nil
}
