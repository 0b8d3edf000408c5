package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/remotework/jobnexus/internal/adapter/memory"
	"github.com/remotework/jobnexus/internal/adapter/scraper"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const jobURL = "https://careers.example.com/jobs/7"

type fakeFetcher struct {
	html  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Page{URL: url, HTML: f.html, HTTPStatusCode: 200}, nil
}

type fakeScraper struct {
	result *entity.ExtractionResult
	err    error
}

func (s fakeScraper) Scrape(page *entity.Page) (*entity.ExtractionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	r := *s.result
	return &r, nil
}

type extractorFixture struct {
	fetcher  *fakeFetcher
	cache    *memory.ResultCache
	failures *memory.FailureRepo
}

func newExtractor(f extractorFixture, primary repository.PageScraper) Extractor {
	return NewExtractor(f.fetcher, primary, scraper.Fallback{}, f.cache, f.failures, time.Hour, zap.NewNop())
}

func newFixture(html string, fetchErr error) extractorFixture {
	return extractorFixture{
		fetcher:  &fakeFetcher{html: html, err: fetchErr},
		cache:    memory.NewResultCache(time.Hour),
		failures: memory.NewFailureRepo(),
	}
}

func TestExtractor_InvalidURL(t *testing.T) {
	f := newFixture("", nil)
	uc := newExtractor(f, fakeScraper{result: &entity.ExtractionResult{}})

	for _, raw := range []string{"", "not a url", "example.com/job"} {
		_, err := uc.Extract(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
	assert.Zero(t, f.fetcher.calls)
}

func TestExtractor_HeuristicResultIsCached(t *testing.T) {
	f := newFixture("<html></html>", nil)
	uc := newExtractor(f, fakeScraper{result: &entity.ExtractionResult{Title: "Go Developer", SourceURL: jobURL}})
	ctx := context.Background()

	first, err := uc.Extract(ctx, "  "+jobURL+" ")
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", first.Title)
	assert.Empty(t, first.Note)

	second, err := uc.Extract(ctx, jobURL)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", second.Title)
	assert.Equal(t, 1, f.fetcher.calls)

	cached, err := f.cache.Get(ctx, jobURL)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", cached.Title)

	require.NoError(t, uc.Invalidate(ctx, jobURL))
	_, err = uc.Extract(ctx, jobURL)
	require.NoError(t, err)
	assert.Equal(t, 2, f.fetcher.calls)

	assert.ErrorIs(t, uc.Invalidate(ctx, "nope"), ErrInvalidURL)
}

func TestExtractor_FallbackWhenHeuristicsFail(t *testing.T) {
	html := `<html><head><title>Support Lead</title></head><body><p>Help our customers.</p></body></html>`
	f := newFixture(html, nil)
	uc := newExtractor(f, fakeScraper{err: repository.ErrNoContent})
	ctx := context.Background()

	got, err := uc.Extract(ctx, jobURL)

	require.NoError(t, err)
	assert.Equal(t, "Support Lead", got.Title)
	assert.Equal(t, "Help our customers.", got.Description)
	assert.Equal(t, LimitedDetailsNote, got.Note)
	assert.Equal(t, jobURL, got.SourceURL)

	failures, _ := f.failures.Recent(ctx, 10)
	require.Len(t, failures, 1)
	assert.Equal(t, jobURL, failures[0].URL)
	assert.Equal(t, 1, failures[0].AttemptCount)

	_, err = f.cache.Get(ctx, jobURL)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestExtractor_PlaceholderWhenFetchFails(t *testing.T) {
	f := newFixture("", fmt.Errorf("%w: 503", repository.ErrBadStatus))
	uc := newExtractor(f, fakeScraper{result: &entity.ExtractionResult{}})
	ctx := context.Background()

	got, err := uc.Extract(ctx, jobURL)
	require.NoError(t, err)
	assert.Equal(t, scraper.PlaceholderTitle, got.Title)
	assert.Equal(t, LimitedDetailsNote, got.Note)

	_, err = uc.Extract(ctx, jobURL)
	require.NoError(t, err)
	failures, err := uc.RecentFailures(ctx, 0)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, 2, failures[0].AttemptCount)
	assert.Contains(t, failures[0].FailureReason, "503")
}

func TestExtractor_CanceledContext(t *testing.T) {
	f := newFixture("", context.Canceled)
	uc := newExtractor(f, fakeScraper{result: &entity.ExtractionResult{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Extract(ctx, jobURL)

	assert.True(t, errors.Is(err, context.Canceled))
}
