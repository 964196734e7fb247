package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/riptide/fluid"
)

func TestCollectWindowStats(t *testing.T) {
	s, err := fluid.NewSolver(64, 64, fluid.Params{
		DT:               0.6,
		Viscosity:        1e-5,
		JacobiIterations: 10,
		EnableBoundary:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Brush().SetParams(12, 3, 1)
	s.Brush().SetDown(true)
	s.Brush().Move(32, 32, 1, 0)
	s.AdvanceFrame()

	scratch := fluid.NewScalarGrid(64, 64)
	stats := CollectWindowStats(s, &scratch, 17)

	if stats.Frame != 1 {
		t.Errorf("frame = %d, want 1", stats.Frame)
	}
	if stats.TotalInk <= 0 {
		t.Error("expected injected ink in stats")
	}
	if stats.MaxSpeed <= 0 {
		t.Error("expected motion in stats")
	}
	if stats.TracerCount != 17 {
		t.Errorf("tracer count = %d, want 17", stats.TracerCount)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("empty dir must disable output, got error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All writes must be no-ops on the nil manager.
	if err := om.WriteFrameStats(WindowStats{}); err != nil {
		t.Errorf("nil manager write failed: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("nil manager write failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager close failed: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()

	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	stats := WindowStats{Frame: 60, TotalInk: 12.5, MaxSpeed: 1.25, DivergenceL2: 0.01}
	if err := om.WriteFrameStats(stats); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteFrameStats(stats); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "total_ink") {
		t.Errorf("header missing total_ink column: %q", lines[0])
	}
	if strings.Contains(lines[2], "total_ink") {
		t.Error("second record must not repeat the header")
	}
}
