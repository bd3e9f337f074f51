package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tlsraven.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  backend: tshark
tshark:
  path: /opt/wireshark/tshark
  timeout: 30s
output:
  file: findings.json
  colors: false
  show_banner: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "tshark", cfg.Analyzer.Backend)
	assert.Equal(t, "/opt/wireshark/tshark", cfg.Tshark.Path)
	assert.Equal(t, 30*time.Second, cfg.Tshark.Timeout)
	assert.Equal(t, "findings.json", cfg.Output.File)
	assert.False(t, cfg.Output.Colors)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "analyzer: [not: valid")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigInvalidBackend(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  backend: scapy
output:
  file: report.json
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestLoadConfigOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, CreateDefaultConfig(), cfg)
}

func TestLoadConfigOrDefaultReportsParseErrors(t *testing.T) {
	path := writeConfigFile(t, "analyzer: [not: valid")

	_, err := LoadConfigOrDefault(path)
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default is valid", func(*Config) {}, ""},
		{"empty backend means auto", func(c *Config) { c.Analyzer.Backend = "" }, ""},
		{"stdout output", func(c *Config) { c.Output.File = "-" }, ""},
		{"unknown backend", func(c *Config) { c.Analyzer.Backend = "pyshark" }, "invalid backend"},
		{"negative timeout", func(c *Config) { c.Tshark.Timeout = -time.Second }, "timeout cannot be negative"},
		{"missing output file", func(c *Config) { c.Output.File = "" }, "output file is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CreateDefaultConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfigNil(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	original := CreateDefaultConfig()
	original.Analyzer.Backend = "gopacket"
	original.Tshark.Timeout = 90 * time.Second
	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	cfg := CreateDefaultConfig()
	cfg.Output.File = ""

	err := SaveConfig(cfg, filepath.Join(t.TempDir(), "invalid.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot save invalid configuration")
}
