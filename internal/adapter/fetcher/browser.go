package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"go.uber.org/zap"
)

// BrowserFetcher renders pages in headless Chrome so postings built by
// client-side scripts still yield their HTML.
type BrowserFetcher struct {
	allocatorPool *sync.Pool
	cancels       []context.CancelFunc
	mu            sync.Mutex
	rotator       *Rotator
	timeout       time.Duration
	logger        *zap.Logger
}

// NewBrowserFetcher creates a fetcher with maxConcurrency pre-warmed browser allocators.
func NewBrowserFetcher(rotator *Rotator, maxConcurrency int, pageLoadTimeout time.Duration, logger *zap.Logger) *BrowserFetcher {
	f := &BrowserFetcher{
		rotator: rotator,
		timeout: pageLoadTimeout,
		logger:  logger,
	}
	f.allocatorPool = &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(rotator.UserAgent()),
			)
			if proxy := rotator.Proxy(); proxy != "" {
				opts = append(opts, chromedp.ProxyServer(proxy))
			}
			allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
			f.mu.Lock()
			f.cancels = append(f.cancels, cancel)
			f.mu.Unlock()
			return allocCtx
		},
	}

	// Pre-warm the pool
	for i := 0; i < maxConcurrency; i++ {
		allocCtx := f.allocatorPool.Get().(context.Context)
		f.allocatorPool.Put(allocCtx)
	}
	return f
}

// Fetch navigates to url, waits for the body and returns the rendered HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	allocCtx := f.allocatorPool.Get().(context.Context)
	defer f.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, f.timeout)
	defer cancelTimeout()

	// Abandon the browser task when the caller gives up.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	start := time.Now()
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	elapsed := time.Since(start)

	if err != nil {
		if taskCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", repository.ErrFetchTimeout, url)
		}
		return nil, fmt.Errorf("rendering %s: %w", url, err)
	}

	f.logger.Debug("rendered page", zap.String("url", url), zap.Duration("elapsed", elapsed))

	return &entity.Page{
		URL:            url,
		HTML:           html,
		HTTPStatusCode: 200,
		ResponseTimeMS: int(elapsed.Milliseconds()),
		FetchedAt:      time.Now(),
	}, nil
}

// Close shuts down every browser allocator the fetcher started.
func (f *BrowserFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil
}
