package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	serr "codecity/internal/errors"
	"codecity/internal/highlight"
)

// Config represents the application configuration structure.
// It defines how the tree is scanned, where metric data comes from and how
// layers are displayed.
type Config struct {
	Scan struct {
		IncludeHidden bool     `yaml:"include_hidden"` // Include dot files and directories
		Ignore        []string `yaml:"ignore"`         // Glob patterns matched against relative paths
	} `yaml:"scan"`
	Sources struct {
		Git         bool     `yaml:"git"`         // Read git status for the git mode
		Quality     []string `yaml:"quality"`     // Quality report files, merged in order
		Annotations string   `yaml:"annotations"` // Agent highlight layer feed
	} `yaml:"sources"`
	Display struct {
		DefaultMode     string            `yaml:"default_mode"`     // Mode selected on start
		SecondaryLayers bool              `yaml:"secondary_layers"` // Emit accent layers per extension
		ExtensionColors map[string]string `yaml:"extension_colors"` // Extension -> #rrggbb
	} `yaml:"display"`
	Watch struct {
		DebounceMS int `yaml:"debounce_ms"` // Quiet period before reloading after changes
	} `yaml:"watch"`
	Theme struct {
		Name string `yaml:"name"` // Theme name (default, dark, light, ...)
	} `yaml:"theme"`
}

// DefaultPath returns ~/.config/codecity/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "codecity", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, serr.NewFileError("error reading config file", path, serr.FileAccessDenied, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	tempCfg.Sources.Git = cfg.Sources.Git
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, serr.NewConfigError("error parsing config file", path, serr.InvalidConfig, err)
	}

	cfg.Scan.IncludeHidden = tempCfg.Scan.IncludeHidden
	if len(tempCfg.Scan.Ignore) > 0 {
		cfg.Scan.Ignore = tempCfg.Scan.Ignore
	}

	cfg.Sources.Git = tempCfg.Sources.Git
	if len(tempCfg.Sources.Quality) > 0 {
		cfg.Sources.Quality = tempCfg.Sources.Quality
	}
	if tempCfg.Sources.Annotations != "" {
		cfg.Sources.Annotations = tempCfg.Sources.Annotations
	}

	if tempCfg.Display.DefaultMode != "" {
		cfg.Display.DefaultMode = tempCfg.Display.DefaultMode
	}
	cfg.Display.SecondaryLayers = tempCfg.Display.SecondaryLayers
	for ext, color := range tempCfg.Display.ExtensionColors {
		cfg.Display.ExtensionColors[strings.ToLower(strings.TrimPrefix(ext, "."))] = color
	}

	if tempCfg.Watch.DebounceMS != 0 {
		cfg.Watch.DebounceMS = tempCfg.Watch.DebounceMS
	}
	if tempCfg.Theme.Name != "" {
		cfg.Theme.Name = tempCfg.Theme.Name
	}

	if err := cfg.Validate(); err != nil {
		return nil, serr.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Scan.IncludeHidden = false
	cfg.Scan.Ignore = []string{"node_modules", "**/node_modules", "vendor", "dist", "build"}

	cfg.Sources.Git = true
	cfg.Sources.Quality = []string{".codecity/quality.yaml"}
	cfg.Sources.Annotations = ".codecity/agents.yaml"

	cfg.Display.DefaultMode = string(highlight.ModeFileTypes)
	cfg.Display.SecondaryLayers = false
	cfg.Display.ExtensionColors = map[string]string{}

	cfg.Watch.DebounceMS = 300
	cfg.Theme.Name = "default"

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return serr.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return serr.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return serr.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return serr.ErrInvalidConfig
	}

	if _, err := CompileIgnore(c.Scan.Ignore); err != nil {
		return err
	}

	if _, ok := highlight.ParseMode(c.Display.DefaultMode); !ok {
		return serr.NewConfigError("unknown default mode", "display.default_mode", serr.InvalidConfig,
			serr.Newf("%q", c.Display.DefaultMode))
	}

	for ext, color := range c.Display.ExtensionColors {
		if ext == "" {
			return serr.NewConfigError("extension color without extension", "display.extension_colors", serr.InvalidConfig, nil)
		}
		if !highlight.ValidColor(color) {
			return serr.NewConfigError("invalid color", "display.extension_colors."+ext, serr.InvalidConfig,
				serr.Newf("%q", color))
		}
	}

	for i, path := range c.Sources.Quality {
		if strings.TrimSpace(path) == "" {
			return serr.NewConfigError("empty quality report path", fmt.Sprintf("sources.quality[%d]", i), serr.InvalidConfig, nil)
		}
	}

	if c.Watch.DebounceMS < 0 {
		return serr.NewConfigError("debounce must be >= 0", "watch.debounce_ms", serr.InvalidConfig, nil)
	}

	valid := false
	for _, name := range ListThemes() {
		if name == c.Theme.Name {
			valid = true
			break
		}
	}
	if !valid {
		return serr.NewConfigError("unknown theme", "theme.name", serr.InvalidConfig, serr.Newf("%q", c.Theme.Name))
	}

	return nil
}

// CompileIgnore compiles ignore patterns with '/' as the separator.
func CompileIgnore(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, serr.NewConfigError("invalid ignore pattern", "scan.ignore", serr.InvalidPattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Mode returns the configured default mode.
func (c *Config) Mode() highlight.ModeID {
	id, ok := highlight.ParseMode(c.Display.DefaultMode)
	if !ok {
		return highlight.ModeFileTypes
	}
	return id
}

// FileTypeOptions returns the file-type builder options from the display
// settings.
func (c *Config) FileTypeOptions() highlight.FileTypeOptions {
	overrides := make(map[string]string, len(c.Display.ExtensionColors))
	for k, v := range c.Display.ExtensionColors {
		overrides[k] = v
	}
	return highlight.FileTypeOptions{
		Secondary: c.Display.SecondaryLayers,
		Palette:   highlight.Palette{Overrides: overrides},
	}
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213",
			"success":  "114",
			"warning":  "220",
			"error":    "196",
			"info":     "39",
			"emphasis": "212",
			"border":   "213",
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
