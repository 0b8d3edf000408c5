package jobform

import (
	"sync"

	"github.com/remotework/jobnexus/internal/entity"
)

// DefaultJobTypes are the options of the job type select built by NewMemoryForm.
var DefaultJobTypes = []string{"Full-time", "Part-time", "Contract", "Freelance", "Internship"}

// Validity is the validation marking of an in-memory control.
type Validity int

const (
	Unmarked Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unmarked"
}

type marks struct {
	mu        sync.Mutex
	validity  Validity
	populated bool
	focused   bool
}

func (m *marks) MarkValid()      { m.setValidity(Valid) }
func (m *marks) MarkInvalid()    { m.setValidity(Invalid) }
func (m *marks) ClearValidity()  { m.setValidity(Unmarked) }
func (m *marks) MarkPopulated()  { m.setPopulated(true) }
func (m *marks) ClearPopulated() { m.setPopulated(false) }

func (m *marks) Focus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focused = true
}

func (m *marks) setValidity(v Validity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validity = v
}

func (m *marks) setPopulated(p bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.populated = p
}

// Validity returns the current validation marking.
func (m *marks) Validity() Validity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validity
}

// Populated reports whether the populated marker is showing.
func (m *marks) Populated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.populated
}

// Focused reports whether the control has been focused.
func (m *marks) Focused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focused
}

// Field is an in-memory text input.
type Field struct {
	marks
	value string
}

func NewField(value string) *Field {
	return &Field{value: value}
}

func (f *Field) Get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Field) Set(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
}

// Select is an in-memory single-select. Its value is the selected option.
type Select struct {
	marks
	options []string
	index   int
}

func NewSelect(options ...string) *Select {
	return &Select{options: append([]string(nil), options...)}
}

func (s *Select) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 || s.index >= len(s.options) {
		return ""
	}
	return s.options[s.index]
}

// Set selects the option equal to value; other values are ignored, a select
// cannot hold a value it has no option for.
func (s *Select) Set(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, opt := range s.options {
		if opt == value {
			s.index = i
			return
		}
	}
}

func (s *Select) Options() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.options...)
}

func (s *Select) SelectIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= 0 && i < len(s.options) {
		s.index = i
	}
}

// SelectedIndex returns the index of the selected option.
func (s *Select) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Button is an in-memory trigger control.
type Button struct {
	mu      sync.Mutex
	enabled bool
	label   string
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

func (b *Button) SetLabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
}

func (b *Button) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// StatusMessage is one message shown in a StatusRegion.
type StatusMessage struct {
	Kind    StatusKind
	Message string
}

// StatusRegion records every status message it is asked to show.
type StatusRegion struct {
	mu      sync.Mutex
	history []StatusMessage
}

func (r *StatusRegion) Show(kind StatusKind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, StatusMessage{Kind: kind, Message: message})
}

// Last returns the message currently showing.
func (r *StatusRegion) Last() (StatusMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return StatusMessage{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns every message shown so far, oldest first.
func (r *StatusRegion) History() []StatusMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StatusMessage(nil), r.history...)
}

// MemoryForm is a complete posting form held in memory, for terminals and tests.
type MemoryForm struct {
	URL     *Field
	Trigger *Button
	Status  *StatusRegion
	Inputs  map[string]*Field
	JobType *Select
}

// NewMemoryForm builds a form with one control per recognized field. The job
// type select gets jobTypes as options, or DefaultJobTypes when none are given.
func NewMemoryForm(jobTypes ...string) *MemoryForm {
	if len(jobTypes) == 0 {
		jobTypes = DefaultJobTypes
	}
	m := &MemoryForm{
		URL:     NewField(""),
		Trigger: &Button{},
		Status:  &StatusRegion{},
		Inputs:  make(map[string]*Field),
		JobType: NewSelect(jobTypes...),
	}
	for _, name := range entity.RecognizedFields {
		if name != entity.FieldJobType {
			m.Inputs[name] = NewField("")
		}
	}
	return m
}

// Form exposes the controls as the bindings a Controller expects.
func (m *MemoryForm) Form() Form {
	fields := make(map[string]FieldBinding, len(m.Inputs)+1)
	for name, f := range m.Inputs {
		fields[name] = f
	}
	fields[entity.FieldJobType] = m.JobType
	return Form{
		URL:     m.URL,
		Trigger: m.Trigger,
		Status:  m.Status,
		Fields:  fields,
	}
}

// Value returns the current value of a named field.
func (m *MemoryForm) Value(name string) string {
	if name == entity.FieldJobType {
		return m.JobType.Get()
	}
	if f, ok := m.Inputs[name]; ok {
		return f.Get()
	}
	return ""
}

// Values returns the current value of every recognized field.
func (m *MemoryForm) Values() map[string]string {
	out := make(map[string]string, len(entity.RecognizedFields))
	for _, name := range entity.RecognizedFields {
		out[name] = m.Value(name)
	}
	return out
}
