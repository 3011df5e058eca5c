package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes values that would break startup and rejects unknown enums.
func (c *Config) Validate() error {
	def := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Renderer.Backend == "" {
		c.Renderer.Backend = def.Renderer.Backend
	}
	if c.Renderer.PixelRatio <= 0 {
		c.Renderer.PixelRatio = 1
	}
	if c.Controls.Camera.Near <= 0 || c.Controls.Camera.Far <= c.Controls.Camera.Near {
		return fmt.Errorf("invalid camera clip range: near=%v far=%v", c.Controls.Camera.Near, c.Controls.Camera.Far)
	}

	c.Screenshot.Format = strings.ToLower(c.Screenshot.Format)
	switch c.Screenshot.Format {
	case "":
		c.Screenshot.Format = "png"
	case "png", "bmp":
	default:
		return fmt.Errorf("unsupported screenshot format %q", c.Screenshot.Format)
	}
	if c.Screenshot.Workers <= 0 {
		c.Screenshot.Workers = 1
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./view.yaml",
		filepath.Join(ConfigDir(), "view.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardView")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-view")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-view")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
