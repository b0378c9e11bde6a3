// Package config handles propgrid configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config represents propgrid configuration.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	Keys  KeysConfig  `toml:"keys"`
	Debug DebugConfig `toml:"debug"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Use the dense row layout
	Compact bool `toml:"compact"`

	// Color theme: auto, dark, light
	Theme string `toml:"theme"`

	// Show the full help instead of the one-line summary
	ShowHelp bool `toml:"show_help"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Home   string `toml:"home"`
	End    string `toml:"end"`
	Edit   string `toml:"edit"`
	Toggle string `toml:"toggle"`
	Filter string `toml:"filter"`
	Reload string `toml:"reload"`
	Help   string `toml:"help"`
	Quit   string `toml:"quit"`
}

// DebugConfig contains debug logging settings.
type DebugConfig struct {
	// Log file used when debug logging is on (empty = user cache dir)
	LogFile string `toml:"log_file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Compact:  false,
			Theme:    "auto",
			ShowHelp: false,
		},
		Keys: KeysConfig{
			Up:     "up,k",
			Down:   "down,j",
			Home:   "home,g",
			End:    "end,G",
			Edit:   "enter,e",
			Toggle: " ,x",
			Filter: "/",
			Reload: "r",
			Help:   "?",
			Quit:   "q,ctrl+c",
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/propgrid/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	// Respect XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "propgrid", "config.toml")
	}
	// Default to ~/.config on Unix (including macOS)
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "propgrid", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "propgrid", "config.toml")
	}
	return filepath.Join(configDir, "propgrid", "config.toml")
}

// IsFirstRun returns true if no config file exists.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigPath())
	return os.IsNotExist(err)
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// go-toml/v2 only overwrites fields present in the file, so defaults
	// survive for everything else.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyOverrides copies settings made through flags or PROPGRID_*
// environment variables over the file values.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	if v == nil {
		return
	}
	if v.IsSet("compact") {
		c.UI.Compact = v.GetBool("compact")
	}
	if v.IsSet("theme") && v.GetString("theme") != "" {
		c.UI.Theme = v.GetString("theme")
	}
	if v.IsSet("log-file") && v.GetString("log-file") != "" {
		c.Debug.LogFile = v.GetString("log-file")
	}
}

// Save saves configuration to the config file.
func Save(cfg *Config) error {
	return SaveToPath(cfg, ConfigPath())
}

// SaveToPath saves configuration to a specific path.
func SaveToPath(cfg *Config, path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CreateDefaultConfigFile creates a default config file with comments.
func CreateDefaultConfigFile() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	content := generateDefaultConfigContent()
	return os.WriteFile(path, []byte(content), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# propgrid configuration\n\n")

	b.WriteString("[ui]\n")
	b.WriteString("# Dense rows without separators\n")
	fmt.Fprintf(&b, "compact = %v\n", cfg.UI.Compact)
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.UI.Theme)
	b.WriteString("# Show full help by default\n")
	fmt.Fprintf(&b, "show_help = %v\n\n", cfg.UI.ShowHelp)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# up = %q\n", cfg.Keys.Up)
	fmt.Fprintf(&b, "# down = %q\n", cfg.Keys.Down)
	fmt.Fprintf(&b, "# home = %q\n", cfg.Keys.Home)
	fmt.Fprintf(&b, "# end = %q\n", cfg.Keys.End)
	fmt.Fprintf(&b, "# edit = %q\n", cfg.Keys.Edit)
	fmt.Fprintf(&b, "# toggle = %q\n", cfg.Keys.Toggle)
	fmt.Fprintf(&b, "# filter = %q\n", cfg.Keys.Filter)
	fmt.Fprintf(&b, "# reload = %q\n", cfg.Keys.Reload)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n\n", cfg.Keys.Quit)

	b.WriteString("[debug]\n")
	b.WriteString("# Where --debug writes its log (default: user cache dir)\n")
	b.WriteString("# log_file = \"/tmp/propgrid.log\"\n")

	return b.String()
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	// Check theme value
	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, or light)", c.UI.Theme))
	}

	// Check that no key is bound to two actions
	bindings := []struct {
		name string
		keys string
	}{
		{"up", c.Keys.Up},
		{"down", c.Keys.Down},
		{"home", c.Keys.Home},
		{"end", c.Keys.End},
		{"edit", c.Keys.Edit},
		{"toggle", c.Keys.Toggle},
		{"filter", c.Keys.Filter},
		{"reload", c.Keys.Reload},
		{"help", c.Keys.Help},
		{"quit", c.Keys.Quit},
	}
	owner := make(map[string]string)
	for _, bnd := range bindings {
		for _, k := range ParseKeys(bnd.keys) {
			if prev, ok := owner[k]; ok && prev != bnd.name {
				warnings = append(warnings, fmt.Sprintf("Key %q is bound to both keys.%s and keys.%s", k, prev, bnd.name))
				continue
			}
			owner[k] = bnd.name
		}
	}

	return warnings
}

// ParseKeys parses a comma-separated list of keys. A lone space is kept
// as the space key.
func ParseKeys(s string) []string {
	parts := strings.Split(s, ",")
	var keys []string
	for _, p := range parts {
		if p == " " {
			keys = append(keys, p)
			continue
		}
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
