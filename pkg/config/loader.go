package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = "tlsraven.yaml"

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(yamlData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads config from file or returns the default when the
// file is missing. Parse and validation errors are still reported.
func LoadConfigOrDefault(filename string) (*Config, error) {
	cfg, err := LoadConfig(filename)
	if err == nil {
		return cfg, nil
	}

	checkName := filename
	if checkName == "" {
		checkName = DefaultConfigFilename
	}
	if _, statErr := os.Stat(checkName); os.IsNotExist(statErr) {
		return CreateDefaultConfig(), nil
	}

	return nil, err
}

// ValidateConfig validates the configuration for correctness
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := validateAnalyzerConfig(&cfg.Analyzer); err != nil {
		return fmt.Errorf("analyzer configuration error: %w", err)
	}

	if err := validateTsharkConfig(&cfg.Tshark); err != nil {
		return fmt.Errorf("tshark configuration error: %w", err)
	}

	if err := validateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("output configuration error: %w", err)
	}

	return nil
}

// validateAnalyzerConfig validates analysis-specific configuration
func validateAnalyzerConfig(analyzer *AnalyzerConfig) error {
	validBackends := map[string]bool{
		"":         true, // empty means auto
		"auto":     true,
		"gopacket": true,
		"tshark":   true,
	}

	if !validBackends[analyzer.Backend] {
		return fmt.Errorf("invalid backend: %s", analyzer.Backend)
	}

	return nil
}

// validateTsharkConfig validates tshark-specific configuration
func validateTsharkConfig(tshark *TsharkConfig) error {
	if tshark.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got: %v", tshark.Timeout)
	}

	return nil
}

// validateOutputConfig validates output-specific configuration
func validateOutputConfig(output *OutputConfig) error {
	if output.File == "" {
		return fmt.Errorf("output file is required (use \"-\" for stdout)")
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(cfg *Config, filename string) error {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("cannot save invalid configuration: %w", err)
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(filename, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
