// internal/workers/application/submit-application/submitter.go
package submitapplication

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"technet-workers/internal/common/logger"
	"technet-workers/internal/models"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateApplication = errors.New("DUPLICATE_APPLICATION")
	ErrJobNotFound          = errors.New("JOB_NOT_FOUND")
)

// unique_violation
const pqUniqueViolation = "23505"

// ApplicationSubmitter stores a seeker's application to a posting and returns
// the title of the posting applied to.
type ApplicationSubmitter interface {
	Submit(ctx context.Context, app *models.Application) (jobTitle string, err error)
}

type PostgresSubmitter struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSubmitter(db *sql.DB, log logger.Logger) *PostgresSubmitter {
	return &PostgresSubmitter{db: db, logger: log}
}

func (s *PostgresSubmitter) Submit(ctx context.Context, app *models.Application) (string, error) {
	var title string
	err := s.db.QueryRowContext(ctx, `
		SELECT title FROM jobs
		WHERE id = $1 AND is_active = true`, app.JobID).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrJobNotFound, app.JobID)
	}
	if err != nil {
		return "", fmt.Errorf("%w: job lookup failed: %v", ErrDatabaseInsertFailed, err)
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE seeker_id = $1 AND job_id = $2 AND status <> $3
		)`, app.SeekerID, app.JobID, models.ApplicationStatusWithdrawn).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return "", fmt.Errorf("%w: seeker %s already applied to job %s",
			ErrDuplicateApplication, app.SeekerID, app.JobID)
	}

	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, seeker_id, job_id, cover_letter, resume_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		app.ID,
		app.SeekerID,
		app.JobID,
		nullable(app.CoverLetter),
		nullable(app.ResumeID),
		app.Status,
		app.CreatedAt,
	)
	if err != nil {
		// a concurrent submit can pass the EXISTS check
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return "", fmt.Errorf("%w: seeker %s already applied to job %s",
				ErrDuplicateApplication, app.SeekerID, app.JobID)
		}
		return "", fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	details, err := json.Marshal(map[string]interface{}{
		"seekerId":       app.SeekerID,
		"jobId":          app.JobID,
		"hasCoverLetter": app.CoverLetter != "",
	})
	if err != nil {
		details = []byte("{}")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_submitted",
		"application",
		app.ID,
		details,
		app.CreatedAt,
	)
	if err != nil {
		s.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": app.ID,
		})
	}

	return title, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
