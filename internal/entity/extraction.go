package entity

// Field names shared by the extraction service, the job store and the posting form.
const (
	FieldTitle          = "title"
	FieldCompany        = "company"
	FieldLocation       = "location"
	FieldDescription    = "description"
	FieldRequirements   = "requirements"
	FieldSalaryRange    = "salary_range"
	FieldJobType        = "job_type"
	FieldApplicationURL = "application_url"
	FieldSourceURL      = "source_url"
)

// RecognizedFields lists the fields an extraction can populate, in form order.
var RecognizedFields = []string{
	FieldTitle,
	FieldCompany,
	FieldLocation,
	FieldDescription,
	FieldRequirements,
	FieldSalaryRange,
	FieldJobType,
	FieldApplicationURL,
	FieldSourceURL,
}

// RequiredFields must be non-empty before a posting may be submitted.
var RequiredFields = []string{
	FieldTitle,
	FieldCompany,
	FieldDescription,
	FieldApplicationURL,
}

// ExtractionRequest is the body of POST /api/extract-job.
type ExtractionRequest struct {
	URL string `json:"url"`
}

// ExtractionResult is the structured job data scraped from a posting URL.
// A non-empty Error means the service could not extract anything usable.
type ExtractionResult struct {
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
	Requirements   string `json:"requirements,omitempty"`
	SalaryRange    string `json:"salary_range,omitempty"`
	JobType        string `json:"job_type,omitempty"`
	JobCategory    string `json:"job_category,omitempty"`
	ApplicationURL string `json:"application_url,omitempty"`
	SourceURL      string `json:"source_url,omitempty"`

	Note  string `json:"_extraction_note,omitempty"`
	Error string `json:"error,omitempty"`
}

// Get returns the value of a recognized field, or "" for unknown names.
func (r *ExtractionResult) Get(field string) string {
	switch field {
	case FieldTitle:
		return r.Title
	case FieldCompany:
		return r.Company
	case FieldLocation:
		return r.Location
	case FieldDescription:
		return r.Description
	case FieldRequirements:
		return r.Requirements
	case FieldSalaryRange:
		return r.SalaryRange
	case FieldJobType:
		return r.JobType
	case FieldApplicationURL:
		return r.ApplicationURL
	case FieldSourceURL:
		return r.SourceURL
	}
	return ""
}

// Failed reports whether the service flagged the extraction as unusable.
func (r *ExtractionResult) Failed() bool {
	return r.Error != ""
}
