package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/remotework/jobnexus/internal/entity"
)

// FailureRepo counts failed extraction attempts per URL.
type FailureRepo struct {
	mu       sync.Mutex
	failures map[string]*entity.ExtractionFailure
	nextID   int64
}

func NewFailureRepo() *FailureRepo {
	return &FailureRepo{failures: make(map[string]*entity.ExtractionFailure), nextID: 1}
}

func (r *FailureRepo) Record(ctx context.Context, failure *entity.ExtractionFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.failures[failure.URL]
	if !ok {
		existing = &entity.ExtractionFailure{ID: r.nextID, URL: failure.URL}
		r.nextID++
		r.failures[failure.URL] = existing
	}
	existing.FailureReason = failure.FailureReason
	existing.LastAttemptTimestamp = failure.LastAttemptTimestamp
	existing.AttemptCount++

	failure.ID = existing.ID
	failure.AttemptCount = existing.AttemptCount
	return nil
}

func (r *FailureRepo) Recent(ctx context.Context, limit int) ([]*entity.ExtractionFailure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.ExtractionFailure, 0, len(r.failures))
	for _, f := range r.failures {
		c := *f
		out = append(out, &c)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].LastAttemptTimestamp.After(out[b].LastAttemptTimestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
