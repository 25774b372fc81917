package chronograph

import (
	"fmt"
	"strings"
	"time"
)

// Report builds a human-readable summary: one line per split followed by
// the total elapsed time. Open splits are measured against the current
// time and marked as still running.
func (c *Chronograph) Report() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var b strings.Builder
	now := time.Now()
	for _, s := range c.splits {
		if s.Stop != nil {
			fmt.Fprintf(&b, "Split %s: %.3fs\n", s.Label, s.Stop.Sub(s.Start).Seconds())
		} else {
			fmt.Fprintf(&b, "Split %s: %.3fs (still running)\n", s.Label, now.Sub(s.Start).Seconds())
		}
	}
	fmt.Fprintf(&b, "Total elapsed time: %.3fs\n", c.totalLocked().Seconds())
	return b.String()
}

// LogReport writes the report through the sink.
func (c *Chronograph) LogReport() {
	c.sink.Message(c.Report())
}
