// Package probes runs a sequence of host probes as the demonstration
// workload for a Chronograph: each probe is timed as one labeled split.
package probes

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/psantana5/chronograph/pkg/chronograph"
)

// Probe is one named host measurement.
type Probe struct {
	Label string
	Run   func() error
}

// Defaults returns the standard probe sequence.
func Defaults() []Probe {
	return []Probe{
		{Label: "cpu", Run: func() error {
			_, err := cpu.Percent(100*time.Millisecond, false)
			return err
		}},
		{Label: "memory", Run: func() error {
			_, err := mem.VirtualMemory()
			return err
		}},
		{Label: "disk", Run: func() error {
			_, err := disk.Usage("/")
			return err
		}},
		{Label: "host", Run: func() error {
			_, err := host.Info()
			return err
		}},
	}
}

// Run times each probe as a split on cg. Probe errors do not interrupt the
// sequence; the first one is returned after all probes have run and the
// chronograph is stopped.
func Run(cg *chronograph.Chronograph, probes []Probe) error {
	var firstErr error
	for i, p := range probes {
		if i == 0 {
			cg.Start(p.Label)
		} else {
			cg.Split(p.Label)
		}
		if err := p.Run(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cg.Stop()
	return firstErr
}
