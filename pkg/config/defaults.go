package config

import (
	"time"
)

// CreateDefaultConfig creates the complete default configuration
func CreateDefaultConfig() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Backend: "auto",
		},
		Tshark: TsharkConfig{
			Path:    "tshark",
			Timeout: 60 * time.Second,
		},
		Output: OutputConfig{
			File:       "report.json",
			Colors:     true,
			ShowBanner: true,
		},
	}
}
