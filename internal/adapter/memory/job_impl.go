// Package memory holds in-process repositories used when no database or
// Redis is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
)

// JobRepo keeps postings in a slice guarded by a mutex.
type JobRepo struct {
	mu     sync.RWMutex
	jobs   []*entity.Job
	nextID int64
	now    func() time.Time
}

func NewJobRepo() *JobRepo {
	return &JobRepo{nextID: 1, now: time.Now}
}

func (r *JobRepo) Create(ctx context.Context, job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = r.nextID
	job.PostedAt = r.now()
	job.IsActive = true
	r.nextID++

	stored := *job
	r.jobs = append(r.jobs, &stored)
	return nil
}

func (r *JobRepo) FindByID(ctx context.Context, id int64) (*entity.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.jobs {
		if j.ID == id {
			out := *j
			return &out, nil
		}
	}
	return nil, repository.ErrJobNotFound
}

func (r *JobRepo) List(ctx context.Context, limit int) ([]*entity.Job, error) {
	return r.filter(limit, func(*entity.Job) bool { return true }), nil
}

func (r *JobRepo) Search(ctx context.Context, query string, limit int) ([]*entity.Job, error) {
	q := strings.ToLower(query)
	return r.filter(limit, func(j *entity.Job) bool {
		for _, s := range []string{j.Title, j.Company, j.Description, j.Location} {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
		return false
	}), nil
}

// filter returns copies of the active jobs matching keep, newest first.
func (r *JobRepo) filter(limit int, keep func(*entity.Job) bool) []*entity.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Job
	for _, j := range r.jobs {
		if j.IsActive && keep(j) {
			c := *j
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].PostedAt.Equal(out[b].PostedAt) {
			return out[a].ID > out[b].ID
		}
		return out[a].PostedAt.After(out[b].PostedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
