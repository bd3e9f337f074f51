package config

import (
	"time"
)

// Config represents the main TLSRaven configuration
type Config struct {
	// Analysis behavior
	Analyzer AnalyzerConfig `yaml:"analyzer" json:"analyzer"`

	// External tshark tool configuration
	Tshark TsharkConfig `yaml:"tshark" json:"tshark"`

	// Output and UI configuration
	Output OutputConfig `yaml:"output" json:"output"`
}

// AnalyzerConfig defines the analysis backend behavior
type AnalyzerConfig struct {
	// Backend selection (auto, gopacket, tshark)
	Backend string `yaml:"backend" json:"backend"`
}

// TsharkConfig defines the external tshark subprocess parameters
type TsharkConfig struct {
	// Executable name or path (resolved via PATH when not absolute)
	Path string `yaml:"path" json:"path"`

	// Timeout for a single tshark invocation
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig defines report output and terminal display parameters
type OutputConfig struct {
	// Default report path; "-" writes the report to stdout
	File string `yaml:"file" json:"file"`

	// Enable colored terminal output
	Colors bool `yaml:"colors" json:"colors"`

	// Show ASCII art banner
	ShowBanner bool `yaml:"show_banner" json:"show_banner"`
}
