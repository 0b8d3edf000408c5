// Package jobform drives the job-posting form: it validates a posting URL,
// asks the extraction service for the job details behind it, fills the form
// fields with the answer and validates the form before submission.
package jobform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/pkg/utils"
	"go.uber.org/zap"
)

// Status messages shown to the user.
const (
	MsgEmptyURL   = "Please enter a valid URL"
	MsgInvalidURL = "Invalid URL format. Please enter a complete URL (e.g., https://example.com/job)"
	MsgLoading    = "Extracting job details..."
	MsgSuccess    = "Job details extracted successfully! Please review and edit if needed."
	MsgTransport  = "Failed to extract job details. Please try again or fill the form manually."
	MsgRequired   = "Please fill in all required fields marked with *"
)

const (
	DefaultRequestTimeout    = 15 * time.Second
	DefaultPasteSettle       = 100 * time.Millisecond
	DefaultHighlightDuration = 1000 * time.Millisecond
	DefaultIdleLabel         = "Extract"
	DefaultBusyLabel         = "Extracting..."
)

// Outcome summarises what a trigger attempt ended up doing.
type Outcome int

const (
	// OutcomeIgnored means nothing happened: the trigger was busy, or a
	// pasted value was not a URL.
	OutcomeIgnored Outcome = iota
	OutcomeInputError
	OutcomeServiceError
	OutcomeTransportError
	OutcomeApplied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInputError:
		return "input_error"
	case OutcomeServiceError:
		return "service_error"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeApplied:
		return "applied"
	default:
		return "ignored"
	}
}

// SubmissionState is computed from the required fields each time a
// submission is validated.
type SubmissionState struct {
	Valid        bool
	Invalid      []string
	FirstInvalid string
}

// Err returns a *ValidationError for an invalid state and nil otherwise.
func (s SubmissionState) Err() error {
	if s.Valid {
		return nil
	}
	return &ValidationError{Fields: s.Invalid}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRequestTimeout bounds a single extraction call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Controller) { c.requestTimeout = d }
}

// WithPasteSettle sets how long HandlePaste waits before reading the input.
func WithPasteSettle(d time.Duration) Option {
	return func(c *Controller) { c.pasteSettle = d }
}

// WithHighlightDuration sets how long the populated marker stays on a field.
func WithHighlightDuration(d time.Duration) Option {
	return func(c *Controller) { c.highlightDuration = d }
}

// WithLabels overrides the trigger labels for the idle and busy states.
func WithLabels(idle, busy string) Option {
	return func(c *Controller) {
		c.idleLabel = idle
		c.busyLabel = busy
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the extraction lifecycle for one form. Create one per page
// and hand it to every event handler of that page.
type Controller struct {
	form      Form
	extractor Extractor
	logger    *zap.Logger

	requestTimeout    time.Duration
	pasteSettle       time.Duration
	highlightDuration time.Duration
	idleLabel         string
	busyLabel         string

	mu        sync.Mutex
	busy      bool
	listeners map[Event][]Listener
}

// NewController validates the form wiring and puts the trigger in its idle state.
func NewController(form Form, extractor Extractor, opts ...Option) (*Controller, error) {
	if form.URL == nil || form.Trigger == nil || form.Status == nil {
		return nil, errors.New("form needs a URL input, a trigger and a status view")
	}
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	for _, name := range entity.RequiredFields {
		if form.Fields[name] == nil {
			return nil, fmt.Errorf("required field %q is not bound", name)
		}
	}

	c := &Controller{
		form:              form,
		extractor:         extractor,
		logger:            zap.NewNop(),
		requestTimeout:    DefaultRequestTimeout,
		pasteSettle:       DefaultPasteSettle,
		highlightDuration: DefaultHighlightDuration,
		idleLabel:         DefaultIdleLabel,
		busyLabel:         DefaultBusyLabel,
		listeners:         make(map[Event][]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.form.Trigger.SetEnabled(true)
	c.form.Trigger.SetLabel(c.idleLabel)
	return c, nil
}

// ValidateURL reports whether raw, trimmed, is a well-formed absolute URL.
func ValidateURL(raw string) bool {
	return utils.IsAbsoluteURL(raw)
}

// Busy reports whether an extraction is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	c.busy = true
	c.mu.Unlock()

	c.form.Trigger.SetEnabled(false)
	c.form.Trigger.SetLabel(c.busyLabel)
	return true
}

// release restores the trigger before clearing the flag so a new request
// cannot be disabled and then re-enabled by a late release.
func (c *Controller) release() {
	c.form.Trigger.SetEnabled(true)
	c.form.Trigger.SetLabel(c.idleLabel)

	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// RequestExtraction issues exactly one call to the extraction service for
// rawURL. The trigger is busy for the duration of the call and is always
// returned to idle, whatever the outcome.
func (c *Controller) RequestExtraction(ctx context.Context, rawURL string) (*entity.ExtractionResult, error) {
	target := strings.TrimSpace(rawURL)
	if !ValidateURL(target) {
		return nil, &InputError{Value: rawURL, Reason: "not an absolute URL"}
	}
	if !c.acquire() {
		return nil, ErrBusy
	}
	defer c.release()

	c.emit(EventURLSubmitted, Payload{URL: target})

	callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	result, err := c.extractor.Extract(callCtx, target)
	switch {
	case err != nil:
		err = &TransportError{URL: target, Err: err}
	case result == nil:
		err = &TransportError{URL: target, Err: errEmptyResponse}
	case result.Failed():
		err = &ServiceReportedError{URL: target, Message: result.Error}
	}

	c.emit(EventResultReceived, Payload{URL: target, Result: result, Err: err})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Extract is the trigger path: it reads the URL input, runs the extraction
// and reflects the outcome in the status view and the form fields.
func (c *Controller) Extract(ctx context.Context) Outcome {
	raw := strings.TrimSpace(c.form.URL.Get())
	if raw == "" {
		c.form.Status.Show(StatusError, MsgEmptyURL)
		return OutcomeInputError
	}
	if !ValidateURL(raw) {
		c.form.Status.Show(StatusError, MsgInvalidURL)
		return OutcomeInputError
	}
	if c.Busy() {
		return OutcomeIgnored
	}

	c.form.Status.Show(StatusLoading, MsgLoading)
	result, err := c.RequestExtraction(ctx, raw)

	var serviceErr *ServiceReportedError
	switch {
	case errors.Is(err, ErrBusy):
		return OutcomeIgnored
	case errors.As(err, &serviceErr):
		c.form.Status.Show(StatusError, serviceErr.Message)
		return OutcomeServiceError
	case err != nil:
		c.logger.Warn("job extraction failed", zap.String("url", raw), zap.Error(err))
		c.form.Status.Show(StatusError, MsgTransport)
		return OutcomeTransportError
	}

	c.ApplyResult(result)
	msg := MsgSuccess
	if result.Note != "" {
		msg += " " + result.Note
	}
	c.form.Status.Show(StatusSuccess, msg)
	return OutcomeApplied
}

// HandlePaste lets a paste settle, then triggers an extraction if the URL
// input now holds a valid URL. It shares the in-flight guard with Extract.
func (c *Controller) HandlePaste(ctx context.Context) Outcome {
	timer := time.NewTimer(c.pasteSettle)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return OutcomeIgnored
	}

	if !ValidateURL(c.form.URL.Get()) {
		return OutcomeIgnored
	}
	return c.Extract(ctx)
}

// ApplyResult copies the extracted values into the bound fields.
func (c *Controller) ApplyResult(result *entity.ExtractionResult) {
	if result == nil || result.Failed() {
		return
	}

	for _, name := range entity.RecognizedFields {
		binding := c.form.Fields[name]
		value := result.Get(name)
		if binding == nil || value == "" {
			continue
		}
		if sel, ok := binding.(SelectBinding); ok {
			selectOption(sel, value)
			continue
		}
		binding.Set(value)
	}

	if appURL := c.form.Fields[entity.FieldApplicationURL]; appURL != nil {
		if result.ApplicationURL != "" {
			appURL.Set(result.ApplicationURL)
		} else if result.SourceURL != "" {
			appURL.Set(result.SourceURL)
		}
	}
	// The hidden source field records where the data came from, even when empty.
	if source := c.form.Fields[entity.FieldSourceURL]; source != nil {
		source.Set(result.SourceURL)
	}

	c.highlightPopulated()
}

// selectOption picks the first option equal to value ignoring case, or the
// first option when none matches.
func selectOption(sel SelectBinding, value string) {
	options := sel.Options()
	if len(options) == 0 {
		return
	}
	want := strings.TrimSpace(value)
	for i, opt := range options {
		if strings.EqualFold(opt, want) {
			sel.SelectIndex(i)
			return
		}
	}
	sel.SelectIndex(0)
}

func (c *Controller) highlightPopulated() {
	for _, name := range entity.RecognizedFields {
		binding := c.form.Fields[name]
		if binding == nil || binding.Get() == "" {
			continue
		}
		binding.MarkValid()
		if h, ok := binding.(Highlighter); ok {
			h.MarkPopulated()
			time.AfterFunc(c.highlightDuration, h.ClearPopulated)
		}
	}
}

// ValidateSubmission checks the required fields. When any is empty the
// submission must not proceed: the status view shows a summary and the
// first empty field gets focus.
func (c *Controller) ValidateSubmission() SubmissionState {
	state := SubmissionState{Valid: true}
	for _, name := range entity.RequiredFields {
		binding := c.form.Fields[name]
		if strings.TrimSpace(binding.Get()) == "" {
			binding.MarkInvalid()
			state.Valid = false
			state.Invalid = append(state.Invalid, name)
			continue
		}
		binding.MarkValid()
	}

	if !state.Valid {
		state.FirstInvalid = state.Invalid[0]
		c.form.Status.Show(StatusError, MsgRequired)
		if f, ok := c.form.Fields[state.FirstInvalid].(Focuser); ok {
			f.Focus()
		}
	}

	c.emit(EventValidationRequested, Payload{State: &state})
	return state
}

// HandleInput recomputes the validation marking of a field after an edit:
// valid when it holds text, unmarked otherwise.
func (c *Controller) HandleInput(field string) {
	binding := c.form.Fields[field]
	if binding == nil {
		return
	}
	binding.ClearValidity()
	if strings.TrimSpace(binding.Get()) != "" {
		binding.MarkValid()
	}
}
