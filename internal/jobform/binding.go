package jobform

import (
	"context"

	"github.com/remotework/jobnexus/internal/entity"
)

// FieldBinding is the controller's only view of an editable control on the page.
type FieldBinding interface {
	Get() string
	Set(value string)
	MarkValid()
	MarkInvalid()
	// ClearValidity removes both valid and invalid marking.
	ClearValidity()
}

// SelectBinding is a single-select control. Set is never used on it; the
// controller picks one of the existing options instead.
type SelectBinding interface {
	FieldBinding
	Options() []string
	SelectIndex(i int)
}

// Highlighter is implemented by bindings that can show the transient
// "populated" marker after an extraction fills them.
type Highlighter interface {
	MarkPopulated()
	ClearPopulated()
}

// Focuser is implemented by bindings that can be scrolled into view and focused.
type Focuser interface {
	Focus()
}

// Trigger is the control that starts an extraction.
type Trigger interface {
	SetEnabled(enabled bool)
	SetLabel(label string)
}

// StatusView renders the extraction status region.
type StatusView interface {
	Show(kind StatusKind, message string)
}

// Extractor calls the job-detail extraction service.
type Extractor interface {
	Extract(ctx context.Context, url string) (*entity.ExtractionResult, error)
}

// Form groups the page elements a Controller works against. The page owns
// them; the controller only reads and writes their values and markings.
type Form struct {
	URL     FieldBinding
	Trigger Trigger
	Status  StatusView
	Fields  map[string]FieldBinding
}

// StatusKind selects the presentation of a status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "info"
	}
}
