package jobform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBusy is returned when an extraction is requested while another is in flight.
var ErrBusy = errors.New("an extraction is already in progress")

var errEmptyResponse = errors.New("empty response from extraction service")

// InputError reports a missing or malformed URL. It is raised before any network call.
type InputError struct {
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Value, e.Reason)
}

// ServiceReportedError carries the message the extraction service returned
// when it could not extract data.
type ServiceReportedError struct {
	URL     string
	Message string
}

func (e *ServiceReportedError) Error() string {
	return e.Message
}

// TransportError covers network failures, timeouts and unparseable responses.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("extraction request for %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError lists the required fields that were empty at submit time.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields are empty: " + strings.Join(e.Fields, ", ")
}

// IsInput checks if an error is an InputError
func IsInput(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsServiceReported checks if an error is a ServiceReportedError
func IsServiceReported(err error) bool {
	var target *ServiceReportedError
	return errors.As(err, &target)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
