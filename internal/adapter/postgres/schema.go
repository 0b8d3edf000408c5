package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id              BIGSERIAL PRIMARY KEY,
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	location        TEXT NOT NULL DEFAULT 'Remote',
	description     TEXT NOT NULL,
	requirements    TEXT NOT NULL DEFAULT '',
	salary_range    TEXT NOT NULL DEFAULT '',
	job_type        TEXT NOT NULL DEFAULT 'Full-time',
	job_category    TEXT NOT NULL DEFAULT 'White-collar',
	application_url TEXT NOT NULL DEFAULT '',
	contact_email   TEXT NOT NULL DEFAULT '',
	source_url      TEXT NOT NULL DEFAULT '',
	posted_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	is_active       BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS jobs_posted_at_idx ON jobs (posted_at DESC);

CREATE TABLE IF NOT EXISTS extraction_failures (
	id                     BIGSERIAL PRIMARY KEY,
	url                    TEXT NOT NULL UNIQUE,
	failure_reason         TEXT NOT NULL,
	last_attempt_timestamp TIMESTAMPTZ NOT NULL,
	attempt_count          INT NOT NULL DEFAULT 1
);
`

// EnsureSchema creates the tables the job board needs if they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
