package entity

import "time"

// Page is the raw HTML fetched for a job posting URL.
type Page struct {
	URL            string
	HTML           string
	HTTPStatusCode int
	ResponseTimeMS int
	FetchedAt      time.Time
}
