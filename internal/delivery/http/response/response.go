package response

import "github.com/remotework/jobnexus/internal/entity"

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type JobListResponse struct {
	Jobs  []*entity.Job `json:"jobs"`
	Count int           `json:"count"`
	Query string        `json:"query,omitempty"`
}

type FailureListResponse struct {
	Failures []*entity.ExtractionFailure `json:"failures"`
	Count    int                         `json:"count"`
}

// HealthResponse reports the overall status and, per configured dependency,
// "healthy" or "unhealthy".
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
