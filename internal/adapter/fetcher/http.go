// Package fetcher downloads job posting pages, either over plain HTTP or
// through a headless browser for pages that render client-side.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"go.uber.org/zap"
)

const maxPageBytes = 5 << 20

// HTTPFetcher fetches pages with a plain GET.
type HTTPFetcher struct {
	client  *http.Client
	rotator *Rotator
	logger  *zap.Logger
}

// NewHTTPFetcher creates a fetcher whose requests go through rotator's
// proxies and user agents and give up after timeout.
func NewHTTPFetcher(rotator *Rotator, timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = rotator.ProxyFunc
	return &HTTPFetcher{
		client:  &http.Client{Transport: transport, Timeout: timeout},
		rotator: rotator,
		logger:  logger,
	}
}

// Fetch downloads url and returns its body as HTML.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.rotator.UserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", repository.ErrFetchTimeout, url)
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", repository.ErrBadStatus, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	elapsed := time.Since(start)
	f.logger.Debug("fetched page",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", elapsed),
	)

	return &entity.Page{
		URL:            url,
		HTML:           string(body),
		HTTPStatusCode: resp.StatusCode,
		ResponseTimeMS: int(elapsed.Milliseconds()),
		FetchedAt:      time.Now(),
	}, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
