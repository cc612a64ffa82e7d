// Package config provides YAML-based configuration for the sxbp tool:
// solver tuning, render output settings and the solve journal location.
package config

// Config is the top-level sxbp configuration.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Render  RenderConfig  `yaml:"render"`
	Journal JournalConfig `yaml:"journal"`
}

// SolverConfig tunes the length solver.
type SolverConfig struct {
	// PerfectionThreshold is the largest rigid-segment length at which the
	// exact geometric resize computation is attempted. -1 removes the cap,
	// trading compact output for solving speed.
	PerfectionThreshold int `yaml:"perfection_threshold"`

	// ProgressEvery controls how often (in solved segments) progress is
	// logged in non-watch mode. 0 disables progress logging.
	ProgressEvery int `yaml:"progress_every"`
}

// RenderConfig tunes image output.
type RenderConfig struct {
	// Format is the default output format when the output path has no
	// recognised extension: "pbm", "png" or "svg".
	Format string `yaml:"format"`
}

// JournalConfig locates the solve-run journal database.
type JournalConfig struct {
	Path string `yaml:"path"`
}
