package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/remotework/jobnexus/internal/entity"
)

// FailureRepoImpl provides a concrete implementation for the FailureRepository interface using PostgreSQL.
type FailureRepoImpl struct {
	db *pgxpool.Pool
}

// NewFailureRepo creates a new instance of FailureRepoImpl.
func NewFailureRepo(db *pgxpool.Pool) *FailureRepoImpl {
	return &FailureRepoImpl{db: db}
}

// Record creates or updates a record for a failed URL.
// It increments the attempt_count on conflict.
func (r *FailureRepoImpl) Record(ctx context.Context, failure *entity.ExtractionFailure) error {
	query := `
		INSERT INTO extraction_failures (url, failure_reason, last_attempt_timestamp, attempt_count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (url) DO UPDATE SET
			failure_reason = EXCLUDED.failure_reason,
			last_attempt_timestamp = EXCLUDED.last_attempt_timestamp,
			attempt_count = extraction_failures.attempt_count + 1
		RETURNING id, attempt_count;
	`
	return r.db.QueryRow(ctx, query,
		failure.URL,
		failure.FailureReason,
		failure.LastAttemptTimestamp,
	).Scan(&failure.ID, &failure.AttemptCount)
}

// Recent retrieves the most recently failed URLs.
func (r *FailureRepoImpl) Recent(ctx context.Context, limit int) ([]*entity.ExtractionFailure, error) {
	query := `
		SELECT id, url, failure_reason, last_attempt_timestamp, attempt_count
		FROM extraction_failures
		ORDER BY last_attempt_timestamp DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*entity.ExtractionFailure
	for rows.Next() {
		var f entity.ExtractionFailure
		if err := rows.Scan(
			&f.ID,
			&f.URL,
			&f.FailureReason,
			&f.LastAttemptTimestamp,
			&f.AttemptCount,
		); err != nil {
			return nil, err
		}
		failures = append(failures, &f)
	}

	return failures, rows.Err()
}
