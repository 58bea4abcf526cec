// Package hardware reports current resource headroom so callers can bound
// indexing concurrency and in-memory batch sizes. It only advises; nothing
// here enforces scheduling.
package hardware

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	busyCPUPercent    = 80.0
	busyMemoryPercent = 80.0
)

// Advice is a concurrency/memory hint derived from current utilization.
type Advice struct {
	// MaxThreads is the suggested upper bound on parallel workers.
	MaxThreads int
	// MaxMemoryFraction is the share of total memory a batch may assume.
	MaxMemoryFraction float64
	// Suggestion is a short human-readable rationale.
	Suggestion string
}

// Advise samples CPU and memory and derives a hint. Sampling failures
// degrade to full-capacity defaults rather than surfacing an error; the
// caller only needs a bound, not telemetry.
func Advise() Advice {
	a := Advice{
		MaxThreads:        runtime.NumCPU(),
		MaxMemoryFraction: 0.9,
		Suggestion:        "full capacity available",
	}

	if pcts, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(pcts) > 0 {
		if pcts[0] > busyCPUPercent {
			a.MaxThreads = max(1, runtime.NumCPU()-2)
			a.Suggestion = "reduce parallel operations"
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		if vm.UsedPercent > busyMemoryPercent {
			a.MaxMemoryFraction = 0.7
			if a.Suggestion == "full capacity available" {
				a.Suggestion = "reduce batch sizes"
			}
		}
	}
	return a
}
