package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
				assert.False(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "stdout", cfg.Telemetry.Exporter)
				assert.Empty(t, cfg.ReportFile)
			},
		},
		{
			name: "env overrides",
			env: map[string]string{
				"COCOA_LOGGING_LEVEL":      "debug",
				"COCOA_LOGGING_OUTPUT":     "both",
				"COCOA_TELEMETRY_ENABLED":  "true",
				"COCOA_TELEMETRY_EXPORTER": "none",
				"COCOA_REPORT_FILE":        "report.yaml",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.True(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "none", cfg.Telemetry.Exporter)
				assert.Equal(t, "report.yaml", cfg.ReportFile)
			},
		},
		{
			name: "non json format is forced to json",
			env:  map[string]string{"COCOA_LOGGING_FORMAT": "text"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name:    "invalid logging output",
			env:     map[string]string{"COCOA_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "invalid exporter",
			env:     map[string]string{"COCOA_TELEMETRY_EXPORTER": "otlp"},
			wantErr: true,
		},
		{
			name:    "malformed bool",
			env:     map[string]string{"COCOA_TELEMETRY_ENABLED": "maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.validate())
	assert.Equal(t, "console", cfg.Logging.Output)
}
