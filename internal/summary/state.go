// Package summary retrieves entity details together with their statistical summaries and keeps the
// result fresh for as long as a view is open.
package summary

import "time"

// Status is the load state of one view.
type Status string

const (
	StatusPending Status = "pending"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// State is a point-in-time copy of a watcher's data. Data survives failed refreshes; Err reports the
// most recent failure and is cleared by the next success.
type State[T any] struct {
	Status              Status
	Data                *T
	Err                 error
	UpdatedAt           time.Time
	LastAttempt         time.Time
	ConsecutiveFailures int
}

func (s State[T]) derive() Status {
	switch {
	case s.Err != nil:
		return StatusError
	case s.Data != nil:
		return StatusReady
	default:
		return StatusPending
	}
}
