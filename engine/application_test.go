package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadApplicationConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prisma.toml")
	content := []byte("width = 320\nheight = 240\nlog_level = \"debug\"\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("LoadApplicationConfig failed: %v", err)
	}
	if config.Width != 320 || config.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", config.Width, config.Height)
	}
	if config.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", config.LogLevel)
	}

	defaults := DefaultApplicationConfig()
	if config.FOVDegrees != defaults.FOVDegrees {
		t.Errorf("expected default fov %f, got %f", defaults.FOVDegrees, config.FOVDegrees)
	}
	if config.OutputFormat != defaults.OutputFormat {
		t.Errorf("expected default output format %s, got %s", defaults.OutputFormat, config.OutputFormat)
	}
}

func TestLoadApplicationConfig_MissingFile(t *testing.T) {
	if _, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestApplicationConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ApplicationConfig)
	}{
		{name: "zero width", mutate: func(c *ApplicationConfig) { c.Width = 0 }},
		{name: "negative height", mutate: func(c *ApplicationConfig) { c.Height = -1 }},
		{name: "fov too wide", mutate: func(c *ApplicationConfig) { c.FOVDegrees = 180 }},
		{name: "no frames", mutate: func(c *ApplicationConfig) { c.Frames = 0 }},
	}
	for _, c := range cases {
		config := DefaultApplicationConfig()
		c.mutate(config)
		if err := config.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}

	if err := DefaultApplicationConfig().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
