package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/riptide/fluid"
)

// WindowStats is a periodic snapshot of field-level simulation state,
// flattened for CSV export.
type WindowStats struct {
	Frame        int64   `csv:"frame"`
	TotalInk     float64 `csv:"total_ink"`
	MaxSpeed     float64 `csv:"max_speed"`
	DivergenceL2 float64 `csv:"divergence_l2"`
	TracerCount  int     `csv:"tracer_count"`
}

// CollectWindowStats samples the solver's current fields. The divergence
// norm is recomputed from the post-projection velocity, so it reflects the
// residual the pressure solve left behind, not the pre-projection value the
// solver consumed.
func CollectWindowStats(s *fluid.Solver, scratch *fluid.ScalarGrid, tracerCount int) WindowStats {
	return WindowStats{
		Frame:        s.Frame(),
		TotalInk:     fluid.TotalInk(s.Ink()),
		MaxSpeed:     fluid.MaxSpeed(s.Velocity()),
		DivergenceL2: fluid.DivergenceNorm(s.Velocity(), scratch),
		TracerCount:  tracerCount,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (w WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", w.Frame),
		slog.Float64("total_ink", w.TotalInk),
		slog.Float64("max_speed", w.MaxSpeed),
		slog.Float64("divergence_l2", w.DivergenceL2),
		slog.Int("tracer_count", w.TracerCount),
	)
}
