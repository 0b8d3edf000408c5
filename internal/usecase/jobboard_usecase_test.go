package usecase

import (
	"context"
	"testing"

	"github.com/remotework/jobnexus/internal/adapter/memory"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJobBoard_PostAppliesDefaults(t *testing.T) {
	board := NewJobBoard(memory.NewJobRepo(), zap.NewNop())

	job, err := board.Post(context.Background(), &entity.Job{
		Title:       " Backend Engineer ",
		Company:     "Acme",
		Description: "Build APIs",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, entity.DefaultLocation, job.Location)
	assert.Equal(t, entity.DefaultJobType, job.JobType)
	assert.Equal(t, entity.CategoryWhiteCollar, job.JobCategory)
	assert.True(t, job.IsActive)
}

func TestJobBoard_PostRequiresFields(t *testing.T) {
	board := NewJobBoard(memory.NewJobRepo(), zap.NewNop())

	_, err := board.Post(context.Background(), &entity.Job{Company: "Acme", Description: "  "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{entity.FieldTitle, entity.FieldDescription}, verr.Fields)
	assert.Equal(t, "missing required fields: title, description", err.Error())
}

func TestJobBoard_GetListSearch(t *testing.T) {
	board := NewJobBoard(memory.NewJobRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := board.Post(ctx, &entity.Job{Title: "Go Developer", Company: "Acme", Description: "Services"})
	require.NoError(t, err)
	_, err = board.Post(ctx, &entity.Job{Title: "Nurse", Company: "CarePlus", Description: "Telehealth shifts"})
	require.NoError(t, err)

	job, err := board.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Nurse", job.Title)

	_, err = board.Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrJobNotFound)

	all, err := board.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := board.Search(ctx, "TELEHEALTH")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Nurse", hits[0].Title)

	everything, err := board.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}
