package entity

import "time"

// ExtractionFailure mirrors the `extraction_failures` PostgreSQL table schema.
type ExtractionFailure struct {
	ID                   int64     `json:"id"`
	URL                  string    `json:"url"`
	FailureReason        string    `json:"failure_reason"`
	LastAttemptTimestamp time.Time `json:"last_attempt_timestamp"`
	AttemptCount         int       `json:"attempt_count"`
}
