package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/jobform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBoard struct {
	extract *entity.ExtractionResult
	posted  []entity.Job
}

func (b *fakeBoard) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract-job", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(b.extract)
	})
	mux.HandleFunc("POST /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		var job entity.Job
		json.NewDecoder(r.Body).Decode(&job)
		job.ID = int64(len(b.posted) + 1)
		b.posted = append(b.posted, job)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(job)
	})
	return mux
}

func newBoard(t *testing.T, result *entity.ExtractionResult) (*fakeBoard, string) {
	t.Helper()
	b := &fakeBoard{extract: result}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return b, srv.URL
}

func TestRun_ExtractAndSubmit(t *testing.T) {
	board, endpoint := newBoard(t, &entity.ExtractionResult{
		Title:       "Go Developer",
		Company:     "Acme",
		Description: "Build services",
		JobType:     "contract",
		SourceURL:   "https://jobs.example.com/9",
	})
	var out bytes.Buffer

	err := run(context.Background(), runOptions{
		URL:      "https://jobs.example.com/9",
		Endpoint: endpoint,
		Timeout:  time.Second,
		Submit:   true,
		Sets:     []string{"salary_range=$100k"},
	}, &out, zap.NewNop())

	require.NoError(t, err)
	require.Len(t, board.posted, 1)
	posted := board.posted[0]
	assert.Equal(t, "Go Developer", posted.Title)
	assert.Equal(t, "Contract", posted.JobType)
	assert.Equal(t, "https://jobs.example.com/9", posted.ApplicationURL)
	assert.Equal(t, "$100k", posted.SalaryRange)
	assert.Contains(t, out.String(), jobform.MsgSuccess)
	assert.Contains(t, out.String(), "Posted job #1: Go Developer at Acme")
}

func TestRun_IncompleteFormIsNotSubmitted(t *testing.T) {
	board, endpoint := newBoard(t, &entity.ExtractionResult{Title: "Go Developer"})
	var out bytes.Buffer

	err := run(context.Background(), runOptions{
		URL:      "https://jobs.example.com/9",
		Endpoint: endpoint,
		Timeout:  time.Second,
		Submit:   true,
	}, &out, zap.NewNop())

	var verr *jobform.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{entity.FieldCompany, entity.FieldDescription, entity.FieldApplicationURL}, verr.Fields)
	assert.Empty(t, board.posted)
	assert.Contains(t, out.String(), jobform.MsgRequired)
}

func TestRun_InvalidURLReportedInline(t *testing.T) {
	_, endpoint := newBoard(t, &entity.ExtractionResult{})
	var out bytes.Buffer

	err := run(context.Background(), runOptions{
		URL:      "jobs.example.com",
		Endpoint: endpoint,
		Timeout:  time.Second,
	}, &out, zap.NewNop())

	require.NoError(t, err)
	assert.Contains(t, out.String(), jobform.MsgInvalidURL)
}

func TestRun_RejectsUnknownOverride(t *testing.T) {
	_, endpoint := newBoard(t, &entity.ExtractionResult{})

	err := run(context.Background(), runOptions{
		Endpoint: endpoint,
		Timeout:  time.Second,
		Sets:     []string{"salary=lots"},
	}, &bytes.Buffer{}, zap.NewNop())

	assert.ErrorContains(t, err, `invalid --set "salary=lots"`)
}
