package repository

import (
	"context"
	"errors"

	"github.com/remotework/jobnexus/internal/entity"
)

// ErrJobNotFound is returned when no job exists with the requested ID.
var ErrJobNotFound = errors.New("job not found")

// JobRepository defines the interface for storing and querying job postings.
type JobRepository interface {
	// Create stores a new job and fills in its ID and PostedAt.
	Create(ctx context.Context, job *entity.Job) error
	// FindByID returns the job or ErrJobNotFound.
	FindByID(ctx context.Context, id int64) (*entity.Job, error)
	// List returns active jobs, newest first.
	List(ctx context.Context, limit int) ([]*entity.Job, error)
	// Search returns active jobs whose title, company, description or
	// location contains query, ignoring case, newest first.
	Search(ctx context.Context, query string, limit int) ([]*entity.Job, error)
}
