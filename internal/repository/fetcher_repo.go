package repository

import (
	"context"
	"errors"

	"github.com/remotework/jobnexus/internal/entity"
)

var (
	ErrFetchTimeout = errors.New("page fetch timed out")
	ErrBadStatus    = errors.New("page returned a non-success status code")
	ErrNoContent    = errors.New("no readable content on page")
)

// PageFetcher defines the contract for downloading a job posting page.
type PageFetcher interface {
	// Fetch downloads the page behind url and returns its HTML.
	Fetch(ctx context.Context, url string) (*entity.Page, error)
}

// PageScraper turns a fetched page into structured job details.
type PageScraper interface {
	Scrape(page *entity.Page) (*entity.ExtractionResult, error)
}
