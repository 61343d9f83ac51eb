package config

import (
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	testCases := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero nodes", func(c *Config) { c.Nodes = 0 }},
		{"negative nodes", func(c *Config) { c.Nodes = -3 }},
		{"zero max-cycles", func(c *Config) { c.MaxCycles = 0 }},
		{"negative max-steps", func(c *Config) { c.MaxSteps = -1 }},
		{"negative failure-sigma", func(c *Config) { c.FailureSigma = -0.5 }},
	}

	for _, tc := range testCases {
		config := NewDefaultConfig()
		tc.mod(config)
		if err := config.Validate(); err == nil {
			t.Fatalf("%s should not validate", tc.name)
		}
	}
}

func TestSetDataDir(t *testing.T) {
	config := NewDefaultConfig()

	config.SetDataDir("/tmp/sim")

	if config.DataDir != "/tmp/sim" {
		t.Fatalf("DataDir should be /tmp/sim, not %s", config.DataDir)
	}
	if want := filepath.Join("/tmp/sim", DefaultBadgerFile); config.DatabaseDir != want {
		t.Fatalf("DatabaseDir should follow to %s, not %s", want, config.DatabaseDir)
	}

	// an explicitly set database directory is left alone
	config = NewDefaultConfig()
	config.DatabaseDir = "/var/db/reports"

	config.SetDataDir("/tmp/sim")

	if config.DatabaseDir != "/var/db/reports" {
		t.Fatalf("explicit DatabaseDir should not move, got %s", config.DatabaseDir)
	}
}

func TestLoggerPrefix(t *testing.T) {
	config := NewTestConfig(t)

	logger := config.Logger()
	if logger == nil {
		t.Fatal("Logger should never be nil")
	}

	if logger.Data["prefix"] != "beaconsim" {
		t.Fatalf("logger prefix should be beaconsim, not %v", logger.Data["prefix"])
	}
}
