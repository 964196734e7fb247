package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/riptide/fluid"
	"github.com/pthm-cable/riptide/telemetry"
)

// logWriter is the destination for plain log output.
var logWriter io.Writer

// SetLogWriter sets the plain log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats writes a human-readable per-stage breakdown.
func (s *Sim) logPerfStats(perf telemetry.PerfStats) {
	Logf("=== Perf @ Frame %d (%dx steps) ===", s.solver.Frame(), s.stepsPerFrame)
	Logf("Avg frame: %s (%.0f/s)",
		perf.AvgFrameDuration.Round(time.Microsecond), perf.FramesPerSecond)

	phases := []string{
		fluid.PhaseBrush, fluid.PhaseAdvect, fluid.PhaseDiffuse,
		fluid.PhaseDivergence, fluid.PhasePressure, fluid.PhaseProject,
		fluid.PhaseInk, telemetry.PhaseTracers, telemetry.PhaseCompose,
	}
	for _, name := range phases {
		avg, ok := perf.PhaseAvg[name]
		if !ok {
			continue
		}
		Logf("  %-12s %10s  %5.1f%%", name,
			avg.Round(time.Microsecond), perf.PhasePct[name])
	}
	Logf("")
}
