package telemetry

import "log/slog"

// Reporter flushes frame statistics once per reporting window: logged via
// slog and, when output is enabled, appended to frames.csv.
type Reporter struct {
	perf      *PerfCollector
	out       *OutputManager
	windowSec float64

	windowStart float64
	reports     int
}

// NewReporter creates a reporter for perf. out may be nil.
// A non-positive windowSec disables reporting.
func NewReporter(perf *PerfCollector, out *OutputManager, windowSec float64) *Reporter {
	return &Reporter{perf: perf, out: out, windowSec: windowSec}
}

// Update is called once per frame with wall seconds since start. It returns
// the statistics and true when a window closed on this call.
func (r *Reporter) Update(elapsedSec float64) (PerfStats, bool) {
	if r.windowSec <= 0 || elapsedSec-r.windowStart < r.windowSec {
		return PerfStats{}, false
	}
	r.windowStart = elapsedSec
	r.reports++

	stats := r.perf.Stats()
	stats.LogStats()
	if err := r.out.WritePerf(stats, elapsedSec); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	return stats, true
}

// Reports returns how many windows have been flushed.
func (r *Reporter) Reports() int {
	return r.reports
}
