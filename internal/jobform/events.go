package jobform

import "github.com/remotework/jobnexus/internal/entity"

// Event is one of the points in the extraction workflow listeners can observe.
type Event int

const (
	// EventURLSubmitted fires once a valid URL has been accepted and the
	// trigger has gone busy.
	EventURLSubmitted Event = iota
	// EventResultReceived fires when the extraction call returns, with either
	// a result or an error.
	EventResultReceived
	// EventValidationRequested fires after a submission has been validated.
	EventValidationRequested
)

func (e Event) String() string {
	switch e {
	case EventURLSubmitted:
		return "urlSubmitted"
	case EventResultReceived:
		return "resultReceived"
	case EventValidationRequested:
		return "validationRequested"
	}
	return "unknown"
}

// Payload carries whatever an event has to report; unrelated fields stay zero.
type Payload struct {
	URL    string
	Result *entity.ExtractionResult
	Err    error
	State  *SubmissionState
}

// Listener is called synchronously, in registration order.
type Listener func(Event, Payload)

// On registers a listener for an event.
func (c *Controller) On(event Event, listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners[event] = append(c.listeners[event], listener)
}

func (c *Controller) emit(event Event, payload Payload) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners[event]...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(event, payload)
	}
}
