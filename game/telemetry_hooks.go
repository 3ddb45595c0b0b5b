package game

import "log/slog"

// flushTelemetry closes the stats window once it has run its course.
func (d *Driver) flushTelemetry() {
	if !d.collector.ShouldFlush(d.tick) {
		return
	}

	d.particles = d.field.Particles(d.particles[:0])
	d.speeds = d.field.Speeds(d.speeds[:0])

	stats := d.collector.Flush(d.tick, d.particles, d.speeds)
	perfStats := d.perf.Stats()

	if d.statsCallback != nil {
		d.statsCallback(stats)
	}

	if d.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if d.output != nil {
		if err := d.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := d.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
