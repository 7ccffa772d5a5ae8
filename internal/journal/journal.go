// Package journal keeps an audit trail of application submissions in
// PostgreSQL. Applicant details are not stored; the ATS owns them.
package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"jobmate/careers-service/internal/apply"
)

// DBTX is the subset of pgxpool.Pool the journal needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schema = `
	CREATE TABLE IF NOT EXISTS application_submissions (
		id           BIGSERIAL PRIMARY KEY,
		job_id       BIGINT      NOT NULL,
		session_id   TEXT        NOT NULL,
		source       TEXT        NOT NULL DEFAULT '',
		format       TEXT        NOT NULL DEFAULT '',
		outcome      TEXT        NOT NULL,
		error        TEXT,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS application_submissions_job_idx
		ON application_submissions (job_id, submitted_at DESC)`

// Store writes apply.Attempt rows.
type Store struct {
	db DBTX
}

// NewStore returns a Store over db.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure journal schema: %w", err)
	}
	return nil
}

// Record inserts one attempt.
func (s *Store) Record(ctx context.Context, a apply.Attempt) error {
	var errText *string
	if a.Error != "" {
		errText = &a.Error
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO application_submissions
		   (job_id, session_id, source, format, outcome, error, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.JobID, a.SessionID, a.Source, a.Format, string(a.Outcome), errText, a.At,
	)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}
