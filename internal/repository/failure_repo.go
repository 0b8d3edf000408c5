package repository

import (
	"context"

	"github.com/remotework/jobnexus/internal/entity"
)

// FailureRepository keeps an audit trail of URLs the primary extraction could not handle.
type FailureRepository interface {
	// Record creates or updates the failure record for a URL, counting attempts.
	Record(ctx context.Context, failure *entity.ExtractionFailure) error
	// Recent lists the most recently failed URLs.
	Recent(ctx context.Context, limit int) ([]*entity.ExtractionFailure, error)
}
