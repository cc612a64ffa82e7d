package config

import (
	_ "embed"
)

//go:embed defaults/sxbp.yaml
var defaultYAML []byte

// Default returns the default sxbp configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			PerfectionThreshold: 1,
			ProgressEvery:       64,
		},
		Render: RenderConfig{
			Format: "png",
		},
		Journal: JournalConfig{
			Path: "~/.sxbp/journal.db",
		},
	}
}
