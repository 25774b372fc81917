package chronograph

import (
	"errors"
	"fmt"
	"time"
)

// ErrIncompleteSplit is returned when a duration is requested for a split
// that is still running and the caller did not allow substitution of the
// current time for the missing stop timestamp.
var ErrIncompleteSplit = errors.New("split is still running")

// StateError reports an invalid start/stop transition on a Chronograph.
type StateError struct {
	Chronograph string
	Op          string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("chronograph %s: cannot %s in current state", e.Chronograph, e.Op)
}

// Split is one timed interval within a Chronograph's life. A nil Stop means
// the split is still running. Once Stop is set the record never changes.
type Split struct {
	Label string     `json:"label" yaml:"label"`
	Start time.Time  `json:"start" yaml:"start"`
	Stop  *time.Time `json:"stop,omitempty" yaml:"stop,omitempty"`
}

// Open reports whether the split is still running.
func (s Split) Open() bool {
	return s.Stop == nil
}

// Duration returns the length of the split. For an open split the current
// time stands in for the missing stop when allowRunning is true; otherwise
// ErrIncompleteSplit is returned.
func (s Split) Duration(allowRunning bool) (time.Duration, error) {
	if s.Stop == nil {
		if !allowRunning {
			return 0, ErrIncompleteSplit
		}
		return time.Since(s.Start), nil
	}
	return s.Stop.Sub(s.Start), nil
}
