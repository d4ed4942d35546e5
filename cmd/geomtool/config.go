package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tool settings, loadable from a TOML file next to the
// assets it processes.
type Config struct {
	// SmoothNormals recomputes per-vertex normals even when the source
	// file carries them.
	SmoothNormals bool `toml:"smooth_normals"`
	// Tangents derives packed tangents; requires UVs in the source file.
	Tangents bool `toml:"tangents"`
	// Dedupe welds duplicate vertices before deriving attributes.
	Dedupe bool `toml:"dedupe"`
	// Goroutines bounds the parallel accumulation on large meshes.
	// 0 selects one goroutine per CPU.
	Goroutines int `toml:"goroutines"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the settings used when no file or flag overrides
// them.
func DefaultConfig() Config {
	return Config{
		SmoothNormals: true,
		Tangents:      true,
		Dedupe:        true,
		Goroutines:    0,
		LogLevel:      "info",
	}
}

// LoadConfig reads a TOML file over the defaults. Missing keys keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
