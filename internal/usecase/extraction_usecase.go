package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/remotework/jobnexus/internal/adapter/scraper"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/remotework/jobnexus/pkg/metrics"
	"github.com/remotework/jobnexus/pkg/utils"
	"go.uber.org/zap"
)

// LimitedDetailsNote is attached to results built by the fallback path.
const LimitedDetailsNote = "Limited details extracted. Please verify and complete."

const maxFailureListing = 100

var ErrInvalidURL = errors.New("invalid URL format")

// Extractor defines the interface for turning a job posting URL into job details.
type Extractor interface {
	Extract(ctx context.Context, url string) (*entity.ExtractionResult, error)
	// Invalidate drops the cached result for url so the next Extract fetches again.
	Invalidate(ctx context.Context, url string) error
	// RecentFailures lists the URLs the heuristics most recently failed on.
	RecentFailures(ctx context.Context, limit int) ([]*entity.ExtractionFailure, error)
}

type extractorUseCase struct {
	fetcher     repository.PageFetcher
	primary     repository.PageScraper
	fallback    repository.PageScraper
	cache       repository.ResultCache
	failureRepo repository.FailureRepository
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewExtractor creates a new instance of the extraction use case.
func NewExtractor(
	fetcher repository.PageFetcher,
	primary repository.PageScraper,
	fallback repository.PageScraper,
	cache repository.ResultCache,
	failureRepo repository.FailureRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) Extractor {
	return &extractorUseCase{
		fetcher:     fetcher,
		primary:     primary,
		fallback:    fallback,
		cache:       cache,
		failureRepo: failureRepo,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Extract fetches the posting and runs the heuristics over it. When the
// heuristics cannot read the page the failure is recorded and a fallback
// result carrying LimitedDetailsNote is returned instead. Only heuristic
// results are cached.
func (uc *extractorUseCase) Extract(ctx context.Context, rawURL string) (*entity.ExtractionResult, error) {
	target := strings.TrimSpace(rawURL)
	if !utils.IsAbsoluteURL(target) {
		return nil, ErrInvalidURL
	}

	if cached, err := uc.cache.Get(ctx, target); err == nil {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		metrics.ExtractionsTotal.WithLabelValues("cached", "").Inc()
		return cached, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		uc.logger.Warn("Result cache lookup failed", zap.String("url", target), zap.Error(err))
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	start := time.Now()
	page, err := uc.fetcher.Fetch(ctx, target)
	if err == nil {
		var result *entity.ExtractionResult
		result, err = uc.primary.Scrape(page)
		if err == nil {
			metrics.ExtractionDuration.WithLabelValues(utils.Hostname(target)).Observe(time.Since(start).Seconds())
			return uc.handleSuccess(ctx, target, result), nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("extracting %s: %w", target, ctxErr)
	}

	uc.logger.Warn("Primary extraction failed, falling back", zap.String("url", target), zap.Error(err))
	return uc.handleFailure(ctx, target, page, err), nil
}

func (uc *extractorUseCase) Invalidate(ctx context.Context, rawURL string) error {
	target := strings.TrimSpace(rawURL)
	if !utils.IsAbsoluteURL(target) {
		return ErrInvalidURL
	}
	if err := uc.cache.Delete(ctx, target); err != nil {
		return fmt.Errorf("invalidating cached result for %s: %w", target, err)
	}
	return nil
}

func (uc *extractorUseCase) RecentFailures(ctx context.Context, limit int) ([]*entity.ExtractionFailure, error) {
	if limit <= 0 || limit > maxFailureListing {
		limit = maxFailureListing
	}
	return uc.failureRepo.Recent(ctx, limit)
}

func (uc *extractorUseCase) handleSuccess(ctx context.Context, url string, result *entity.ExtractionResult) *entity.ExtractionResult {
	metrics.ExtractionsTotal.WithLabelValues("heuristic", "").Inc()

	if err := uc.cache.Set(ctx, url, result, uc.cacheTTL); err != nil {
		// Not critical, the next request extracts again.
		uc.logger.Warn("Failed to cache extraction result", zap.String("url", url), zap.Error(err))
	}
	return result
}

func (uc *extractorUseCase) handleFailure(ctx context.Context, url string, page *entity.Page, extractErr error) *entity.ExtractionResult {
	errorType := "unknown"
	switch {
	case errors.Is(extractErr, repository.ErrFetchTimeout):
		errorType = "timeout"
	case errors.Is(extractErr, repository.ErrBadStatus):
		errorType = "status"
	case errors.Is(extractErr, repository.ErrNoContent):
		errorType = "no_content"
	}

	failure := &entity.ExtractionFailure{
		URL:                  url,
		FailureReason:        extractErr.Error(),
		LastAttemptTimestamp: time.Now(),
	}
	if err := uc.failureRepo.Record(ctx, failure); err != nil {
		uc.logger.Error("Failed to record extraction failure", zap.String("url", url), zap.Error(err))
	}

	outcome := "placeholder"
	result := scraper.Placeholder(url)
	if page != nil {
		if fb, err := uc.fallback.Scrape(page); err == nil {
			outcome = "fallback"
			result = fb
		} else {
			uc.logger.Warn("Fallback extraction failed", zap.String("url", url), zap.Error(err))
		}
	}
	metrics.ExtractionsTotal.WithLabelValues(outcome, errorType).Inc()

	result.Note = LimitedDetailsNote
	return result
}
