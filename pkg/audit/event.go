// Package audit records simulation transitions: topology definitions,
// failure designations and routing-table computations.
package audit

import (
	"fmt"
	"time"
)

// Operations recorded by the simulator.
const (
	OpTopologySet  = "topology.set"
	OpFailureSet   = "failure.set"
	OpFailureClear = "failure.clear"
	OpCompute      = "compute"
)

// Event is one auditable simulator transition.
type Event struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Operation   string        `json:"operation"`
	Topology    string        `json:"topology,omitempty"` // snapshot fingerprint
	Routers     int           `json:"routers,omitempty"`
	Links       int           `json:"links,omitempty"`
	Failed      int           `json:"failed,omitempty"`
	Source      int           `json:"source,omitempty"`
	Destination int           `json:"destination,omitempty"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Operation   string
	Topology    string // fingerprint prefix
	Failed      int
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(operation string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		Operation: operation,
	}
}

// WithTopology records the snapshot the event applies to.
func (e *Event) WithTopology(fingerprint string, routers, links int) *Event {
	e.Topology = fingerprint
	e.Routers = routers
	e.Links = links
	return e
}

// WithFailed records the failed router id.
func (e *Event) WithFailed(router int) *Event {
	e.Failed = router
	return e
}

// WithQuery records the source/destination pair of a computation.
func (e *Event) WithQuery(source, destination int) *Event {
	e.Source = source
	e.Destination = destination
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// Finish sets success or error from err and the elapsed time since start.
func (e *Event) Finish(start time.Time, err error) *Event {
	if err != nil {
		e.WithError(err)
	} else {
		e.WithSuccess()
	}
	return e.WithDuration(time.Since(start))
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
