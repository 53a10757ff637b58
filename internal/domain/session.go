package domain

import "time"

// TimerSession is an audit record of a single run of a timer, opened on start
// and closed on stop or completion. Sessions are cascade-deleted with their
// timer.
type TimerSession struct {
	ID              string
	TimerID         string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds int
	Completed       bool
}

// IsOpen returns true while the session has not been closed.
func (s TimerSession) IsOpen() bool {
	return s.EndedAt == nil
}
