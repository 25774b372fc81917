// Package chronograph provides a stopwatch-like timer that records labeled
// intervals ("splits"), accumulates them into a total elapsed time, and can
// report or serialize the timing data. A process-wide registry hands out
// shared timers by name, and the Timed helpers wrap functions so every call
// is recorded as a split.
package chronograph

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/psantana5/chronograph/pkg/logging"
)

// ErrorPolicy governs how invalid state transitions are surfaced.
type ErrorPolicy int

const (
	// Warn emits a single-line warning through the sink and returns the
	// error to the caller, who is free to ignore it. This is the default:
	// a timing mistake must never take down the instrumented code.
	Warn ErrorPolicy = iota
	// Raise keeps the sink quiet and relies on the returned error alone.
	Raise
)

// Sink receives the Chronograph's warnings, verbose traces and reports,
// one string per call.
type Sink interface {
	Message(msg string)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(string)

func (f SinkFunc) Message(msg string) { f(msg) }

// stdoutSink is the default sink.
type stdoutSink struct{}

func (stdoutSink) Message(msg string) { fmt.Fprintln(os.Stdout, msg) }

// loggerSink routes messages to a leveled logger at a level fixed when the
// Chronograph is constructed.
type loggerSink struct {
	logger *logging.Logger
	level  logging.Level
}

func (s loggerSink) Message(msg string) {
	switch s.level {
	case logging.DEBUG:
		s.logger.Debug(msg)
	case logging.WARN:
		s.logger.Warn(msg)
	case logging.ERROR:
		s.logger.Error(msg)
	default:
		s.logger.Info(msg)
	}
}

// Options configures a Chronograph at construction.
type Options struct {
	// Name identifies the Chronograph in output and is the registry key.
	Name string
	// Verbosity controls sink output: 0 silent, 1 summary on stop,
	// 2 traces on start/stop/reset as well.
	Verbosity int
	// StartTiming starts the first split immediately on construction.
	StartTiming bool
	// Policy selects Warn (default) or Raise behavior for invalid
	// transitions.
	Policy ErrorPolicy
	// Sink receives all output. Defaults to stdout.
	Sink Sink
	// Logger, if set, takes precedence over Sink and routes output
	// through the leveled logger at LogLevel.
	Logger   *logging.Logger
	LogLevel logging.Level
}

// Chronograph records an ordered sequence of splits. At most the last split
// may be open; all earlier splits are closed. Reads and writes are guarded
// so a running Chronograph can be scraped by the metrics exporter and the
// HTTP API.
type Chronograph struct {
	id        string
	name      string
	verbosity int
	policy    ErrorPolicy
	sink      Sink

	mu     sync.RWMutex
	splits []Split
}

// New constructs a Chronograph from opts. An empty name becomes "Default".
func New(opts Options) *Chronograph {
	name := opts.Name
	if name == "" {
		name = "Default"
	}

	var sink Sink
	switch {
	case opts.Logger != nil:
		sink = loggerSink{logger: opts.Logger, level: opts.LogLevel}
	case opts.Sink != nil:
		sink = opts.Sink
	default:
		sink = stdoutSink{}
	}

	c := &Chronograph{
		id:        uuid.NewString(),
		name:      name,
		verbosity: opts.Verbosity,
		policy:    opts.Policy,
		sink:      sink,
	}

	if opts.StartTiming {
		c.Start("")
	}

	return c
}

// ID returns the unique instance identifier assigned at construction.
func (c *Chronograph) ID() string { return c.id }

// Name returns the Chronograph's display name and registry key.
func (c *Chronograph) Name() string { return c.name }

func (c *Chronograph) header() string {
	return "Chronograph " + c.name
}

// fail handles an invalid transition according to the configured policy.
// State is never changed on the failure path.
func (c *Chronograph) fail(op string) error {
	err := &StateError{Chronograph: c.name, Op: op}
	if c.policy == Warn {
		c.sink.Message(fmt.Sprintf("%s: warning: cannot %s in current state", c.header(), op))
	}
	return err
}

// Start opens a new split. It fails with a StateError if the last split is
// still running. An empty label defaults to the 1-based ordinal of the new
// split.
func (c *Chronograph) Start(label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(label)
}

func (c *Chronograph) startLocked(label string) error {
	if n := len(c.splits); n > 0 && c.splits[n-1].Stop == nil {
		return c.fail("start")
	}
	if label == "" {
		label = strconv.Itoa(len(c.splits) + 1)
	}
	c.splits = append(c.splits, Split{Label: label, Start: time.Now()})
	if c.verbosity >= 2 {
		c.sink.Message(fmt.Sprintf("%s: started split %q", c.header(), label))
	}
	return nil
}

// Stop closes the running split. It fails with a StateError if no split is
// running.
func (c *Chronograph) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

func (c *Chronograph) stopLocked() error {
	n := len(c.splits)
	if n == 0 || c.splits[n-1].Stop != nil {
		return c.fail("stop")
	}
	now := time.Now()
	c.splits[n-1].Stop = &now
	if c.verbosity >= 2 {
		c.sink.Message(fmt.Sprintf("%s: stopped at %s", c.header(), now.Format(time.RFC3339)))
	}
	if c.verbosity >= 1 {
		last := now.Sub(c.splits[n-1].Start)
		c.sink.Message(fmt.Sprintf("%s: total elapsed time %.3fs, last split %.3fs",
			c.header(), c.totalLocked().Seconds(), last.Seconds()))
	}
	return nil
}

// Split closes the running split and immediately opens a new one. If the
// stop fails, no new split is started and the stop's error is returned.
func (c *Chronograph) Split(label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.stopLocked(); err != nil {
		return err
	}
	return c.startLocked(label)
}

// Reset discards all splits. It is valid in either state and always
// succeeds.
func (c *Chronograph) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.splits = nil
	if c.verbosity >= 2 {
		c.sink.Message(c.header() + ": reset")
	}
}

// Running reports whether the last split is still open.
func (c *Chronograph) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.splits)
	return n > 0 && c.splits[n-1].Stop == nil
}

func (c *Chronograph) totalLocked() time.Duration {
	var total time.Duration
	now := time.Now()
	for _, s := range c.splits {
		if s.Stop != nil {
			total += s.Stop.Sub(s.Start)
		} else {
			total += now.Sub(s.Start)
		}
	}
	return total
}

// TotalElapsed returns the sum of all split durations. An open split
// contributes up to the current time, so the total grows monotonically
// while the Chronograph is running.
func (c *Chronograph) TotalElapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalLocked()
}

// Seconds returns TotalElapsed as a float, the numeric value of the
// Chronograph.
func (c *Chronograph) Seconds() float64 {
	return c.TotalElapsed().Seconds()
}

// LastCompletedSplit returns the most recent closed split, scanning from
// the end. The second return is false if no split has been closed yet.
func (c *Chronograph) LastCompletedSplit() (Split, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.splits) - 1; i >= 0; i-- {
		if c.splits[i].Stop != nil {
			return c.splits[i], true
		}
	}
	return Split{}, false
}

// LastSplitDuration returns the duration of the last completed split, or
// zero if none exists.
func (c *Chronograph) LastSplitDuration() time.Duration {
	s, ok := c.LastCompletedSplit()
	if !ok {
		return 0
	}
	return s.Stop.Sub(s.Start)
}

// Splits returns a copy of the split records in chronological order.
func (c *Chronograph) Splits() []Split {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Split, len(c.splits))
	for i, s := range c.splits {
		out[i] = s
		if s.Stop != nil {
			stop := *s.Stop
			out[i].Stop = &stop
		}
	}
	return out
}

// SplitCount returns the number of recorded splits.
func (c *Chronograph) SplitCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.splits)
}

// Time starts a split and returns a closure that stops it, for use with
// defer:
//
//	defer chronograph.GetChronograph("load").Time()()
func (c *Chronograph) Time() func() {
	c.Start("")
	return func() { c.Stop() }
}

func (c *Chronograph) String() string {
	return fmt.Sprintf("%s: total elapsed time %.3fs", c.header(), c.Seconds())
}
