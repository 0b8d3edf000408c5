package request

import "github.com/remotework/jobnexus/internal/entity"

// ExtractJobRequest is the body of POST /api/extract-job. URL is a pointer so
// a missing key can be told apart from an empty one.
type ExtractJobRequest struct {
	URL *string `json:"url"`
	// Refresh skips any cached result.
	Refresh bool `json:"refresh"`
}

type CreateJobRequest struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	SalaryRange    string `json:"salary_range"`
	JobType        string `json:"job_type"`
	JobCategory    string `json:"job_category"`
	ApplicationURL string `json:"application_url"`
	ContactEmail   string `json:"contact_email"`
	SourceURL      string `json:"source_url"`
}

func (r CreateJobRequest) ToEntity() *entity.Job {
	return &entity.Job{
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		Description:    r.Description,
		Requirements:   r.Requirements,
		SalaryRange:    r.SalaryRange,
		JobType:        r.JobType,
		JobCategory:    r.JobCategory,
		ApplicationURL: r.ApplicationURL,
		ContactEmail:   r.ContactEmail,
		SourceURL:      r.SourceURL,
	}
}
