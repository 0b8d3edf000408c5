package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/remotework/jobnexus/pkg/metrics"
	"go.uber.org/zap"
)

const defaultListLimit = 100

// ValidationError lists the required posting fields that were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// JobBoard defines the interface for posting and browsing jobs.
type JobBoard interface {
	Post(ctx context.Context, job *entity.Job) (*entity.Job, error)
	Get(ctx context.Context, id int64) (*entity.Job, error)
	List(ctx context.Context) ([]*entity.Job, error)
	Search(ctx context.Context, query string) ([]*entity.Job, error)
}

type jobBoardUseCase struct {
	jobRepo repository.JobRepository
	logger  *zap.Logger
}

// NewJobBoard creates a new JobBoard use case.
func NewJobBoard(jobRepo repository.JobRepository, logger *zap.Logger) JobBoard {
	return &jobBoardUseCase{jobRepo: jobRepo, logger: logger}
}

func (uc *jobBoardUseCase) Post(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	normalizeJob(job)

	var missing []string
	if job.Title == "" {
		missing = append(missing, entity.FieldTitle)
	}
	if job.Company == "" {
		missing = append(missing, entity.FieldCompany)
	}
	if job.Description == "" {
		missing = append(missing, entity.FieldDescription)
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to store job %q: %w", job.Title, err)
	}
	metrics.JobsPostedTotal.Inc()
	uc.logger.Info("Job posted", zap.Int64("id", job.ID), zap.String("title", job.Title), zap.String("company", job.Company))
	return job, nil
}

func (uc *jobBoardUseCase) Get(ctx context.Context, id int64) (*entity.Job, error) {
	return uc.jobRepo.FindByID(ctx, id)
}

func (uc *jobBoardUseCase) List(ctx context.Context) ([]*entity.Job, error) {
	return uc.jobRepo.List(ctx, defaultListLimit)
}

// Search matches query against title, company, description and location,
// ignoring case. An empty query lists every job.
func (uc *jobBoardUseCase) Search(ctx context.Context, query string) ([]*entity.Job, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.List(ctx)
	}
	return uc.jobRepo.Search(ctx, query, defaultListLimit)
}

func normalizeJob(job *entity.Job) {
	for _, f := range []*string{
		&job.Title, &job.Company, &job.Location, &job.Description, &job.Requirements,
		&job.SalaryRange, &job.JobType, &job.JobCategory, &job.ApplicationURL,
		&job.ContactEmail, &job.SourceURL,
	} {
		*f = strings.TrimSpace(*f)
	}
	if job.Location == "" {
		job.Location = entity.DefaultLocation
	}
	if job.JobType == "" {
		job.JobType = entity.DefaultJobType
	}
	if job.JobCategory == "" {
		job.JobCategory = entity.CategoryWhiteCollar
	}
}
