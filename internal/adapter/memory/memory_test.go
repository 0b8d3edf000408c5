package memory

import (
	"context"
	"testing"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepo_CreateAndFind(t *testing.T) {
	repo := NewJobRepo()
	ctx := context.Background()

	job := &entity.Job{Title: "Engineer", Company: "Acme"}
	require.NoError(t, repo.Create(ctx, job))
	assert.Equal(t, int64(1), job.ID)
	assert.True(t, job.IsActive)
	assert.False(t, job.PostedAt.IsZero())

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", found.Title)

	found.Title = "mutated"
	again, _ := repo.FindByID(ctx, 1)
	assert.Equal(t, "Engineer", again.Title)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrJobNotFound)
}

func TestJobRepo_ListNewestFirstAndSearch(t *testing.T) {
	repo := NewJobRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Job{Title: "Remote Software Developer", Company: "Tech Innovations"}))
	require.NoError(t, repo.Create(ctx, &entity.Job{Title: "HVAC Consultant", Company: "Climate Solutions", Location: "Remote, US"}))
	require.NoError(t, repo.Create(ctx, &entity.Job{Title: "Data Analyst", Company: "MediData", Description: "Healthcare SOFTWARE data"}))

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Data Analyst", all[0].Title)
	assert.Equal(t, "Remote Software Developer", all[2].Title)

	limited, _ := repo.List(ctx, 2)
	assert.Len(t, limited, 2)

	hits, err := repo.Search(ctx, "software", 0)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Data Analyst", hits[0].Title)

	hits, _ = repo.Search(ctx, "us", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "HVAC Consultant", hits[0].Title)
}

func TestFailureRepo_CountsAttempts(t *testing.T) {
	repo := NewFailureRepo()
	ctx := context.Background()
	now := time.Now()

	first := &entity.ExtractionFailure{URL: "https://a.example/1", FailureReason: "timeout", LastAttemptTimestamp: now}
	require.NoError(t, repo.Record(ctx, first))
	assert.Equal(t, 1, first.AttemptCount)

	second := &entity.ExtractionFailure{URL: "https://a.example/1", FailureReason: "404", LastAttemptTimestamp: now.Add(time.Minute)}
	require.NoError(t, repo.Record(ctx, second))
	assert.Equal(t, 2, second.AttemptCount)
	assert.Equal(t, first.ID, second.ID)

	require.NoError(t, repo.Record(ctx, &entity.ExtractionFailure{URL: "https://b.example", LastAttemptTimestamp: now.Add(-time.Hour)}))

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "https://a.example/1", recent[0].URL)
	assert.Equal(t, "404", recent[0].FailureReason)
}

func TestResultCache(t *testing.T) {
	cache := NewResultCache(time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "https://a.example")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "https://a.example", &entity.ExtractionResult{Title: "Engineer"}, time.Minute))
	got, err := cache.Get(ctx, "https://a.example")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Title)

	require.NoError(t, cache.Delete(ctx, "https://a.example"))
	_, err = cache.Get(ctx, "https://a.example")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}
