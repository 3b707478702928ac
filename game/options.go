package game

import "github.com/pthm-cable/rogue/telemetry"

// Options configures a Game beyond what the loaded config file holds.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool    // Log window and perf stats through slog
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // CSV, config and snapshot output; empty disables
	StepsPerUpdate int     // Ticks per UpdateHeadless call
	Map            string  // Overrides world.map when set

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
