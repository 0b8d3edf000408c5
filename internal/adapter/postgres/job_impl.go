package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
)

const jobColumns = `id, title, company, location, description, requirements, salary_range,
	job_type, job_category, application_url, contact_email, source_url, posted_at, is_active`

// JobRepoImpl provides a concrete implementation for the JobRepository interface using PostgreSQL.
type JobRepoImpl struct {
	db *pgxpool.Pool
}

// NewJobRepo creates a new instance of JobRepoImpl.
func NewJobRepo(db *pgxpool.Pool) *JobRepoImpl {
	return &JobRepoImpl{db: db}
}

// Create inserts the job and reads back its generated ID and timestamp.
func (r *JobRepoImpl) Create(ctx context.Context, job *entity.Job) error {
	query := `
		INSERT INTO jobs (title, company, location, description, requirements, salary_range,
			job_type, job_category, application_url, contact_email, source_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
		RETURNING id, posted_at, is_active;
	`
	return r.db.QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Requirements,
		job.SalaryRange,
		job.JobType,
		job.JobCategory,
		job.ApplicationURL,
		job.ContactEmail,
		job.SourceURL,
	).Scan(&job.ID, &job.PostedAt, &job.IsActive)
}

// FindByID retrieves a single job.
func (r *JobRepoImpl) FindByID(ctx context.Context, id int64) (*entity.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1;`, id)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrJobNotFound
	}
	return job, err
}

// List returns active jobs, newest first.
func (r *JobRepoImpl) List(ctx context.Context, limit int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE is_active ORDER BY posted_at DESC, id DESC LIMIT $1;`
	return r.queryJobs(ctx, query, limit)
}

// Search matches query against title, company, description and location.
func (r *JobRepoImpl) Search(ctx context.Context, query string, limit int) ([]*entity.Job, error) {
	sql := `
		SELECT ` + jobColumns + ` FROM jobs
		WHERE is_active AND (
			title ILIKE $1 OR company ILIKE $1 OR description ILIKE $1 OR location ILIKE $1
		)
		ORDER BY posted_at DESC, id DESC
		LIMIT $2;
	`
	return r.queryJobs(ctx, sql, likePattern(query), limit)
}

func (r *JobRepoImpl) queryJobs(ctx context.Context, query string, args ...any) ([]*entity.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var job entity.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Description,
		&job.Requirements,
		&job.SalaryRange,
		&job.JobType,
		&job.JobCategory,
		&job.ApplicationURL,
		&job.ContactEmail,
		&job.SourceURL,
		&job.PostedAt,
		&job.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// likePattern escapes ILIKE wildcards in q and wraps it for a substring match.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
