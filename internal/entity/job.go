package entity

import "time"

// Job categories assigned by the extraction heuristics.
const (
	CategoryWhiteCollar = "White-collar"
	CategoryBlueCollar  = "Blue-collar"
	CategoryGreyCollar  = "Grey-collar"
)

const (
	DefaultLocation = "Remote"
	DefaultJobType  = "Full-time"
)

// Job mirrors the `jobs` PostgreSQL table schema.
type Job struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements,omitempty"`
	SalaryRange    string    `json:"salary_range,omitempty"`
	JobType        string    `json:"job_type"`
	JobCategory    string    `json:"job_category"`
	ApplicationURL string    `json:"application_url,omitempty"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	SourceURL      string    `json:"source_url,omitempty"`
	PostedAt       time.Time `json:"posted_at"`
	IsActive       bool      `json:"is_active"`
}
