package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codecity/internal/config"
	"codecity/internal/errors"
	"codecity/internal/highlight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
scan:
  include_hidden: true
  ignore: ["**/*.min.js", "tmp"]
sources:
  git: false
  quality: ["reports/coverage.yaml", "reports/lint.json"]
  annotations: "agents.jsonc"
display:
  default_mode: coverage
  secondary_layers: true
  extension_colors:
    .TS: "#112233"
watch:
  debounce_ms: 50
theme:
  name: dark
`
	invalidSyntaxYAML = `
scan:
  ignore: ["unterminated
display: # Missing closing quote and incorrect indentation
  default_mode: git
`
	invalidModeYAML = `
display:
  default_mode: heatmap
`
	invalidColorYAML = `
display:
  extension_colors:
    go: "blue"
`
	invalidPatternYAML = `
scan:
  ignore: ["src/[a-"]
`
	negativeDebounceYAML = `
watch:
  debounce_ms: -5
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.True(t, cfg.Scan.IncludeHidden)
		assert.Equal(t, []string{"**/*.min.js", "tmp"}, cfg.Scan.Ignore)
		assert.False(t, cfg.Sources.Git)
		assert.Equal(t, []string{"reports/coverage.yaml", "reports/lint.json"}, cfg.Sources.Quality)
		assert.Equal(t, "agents.jsonc", cfg.Sources.Annotations)
		assert.Equal(t, highlight.ModeCoverage, cfg.Mode())
		assert.True(t, cfg.Display.SecondaryLayers)
		assert.Equal(t, "#112233", cfg.Display.ExtensionColors["ts"], "extension keys are normalised")
		assert.Equal(t, 50, cfg.Watch.DebounceMS)
		assert.Equal(t, "dark", cfg.Theme.Name)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, "theme:\n  name: light\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Sources.Git)
		assert.Equal(t, highlight.ModeFileTypes, cfg.Mode())
		assert.Equal(t, 300, cfg.Watch.DebounceMS)
		assert.NotEmpty(t, cfg.Scan.Ignore)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err), "a syntax error is an invalid config, not a missing one")
	})

	for name, body := range map[string]string{
		"unknown mode":      invalidModeYAML,
		"invalid color":     invalidColorYAML,
		"invalid pattern":   invalidPatternYAML,
		"negative debounce": negativeDebounceYAML,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestYAML(t, body))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err), "got %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())

	cfg := config.New()
	require.NoError(t, cfg.Validate())

	cfg.Theme.Name = "neon"
	assert.Error(t, cfg.Validate())

	cfg = config.New()
	cfg.Sources.Quality = []string{"ok.yaml", "  "}
	err := cfg.Validate()
	require.Error(t, err)
	var ce *errors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "sources.quality[1]", ce.Param())
}

func TestCompileIgnore(t *testing.T) {
	globs, err := config.CompileIgnore([]string{"**/node_modules", "*.log"})
	require.NoError(t, err)
	require.Len(t, globs, 2)
	assert.True(t, globs[0].Match("web/app/node_modules"))
	assert.True(t, globs[1].Match("debug.log"))
	assert.False(t, globs[1].Match("logs/debug.log"), "single star does not cross separators")

	_, err = config.CompileIgnore([]string{"[a-"})
	require.Error(t, err)
	var ce *errors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, errors.InvalidPattern, ce.Kind())
}

func TestFileTypeOptions(t *testing.T) {
	cfg := config.New()
	cfg.Display.SecondaryLayers = true
	cfg.Display.ExtensionColors["go"] = "#010203"

	opts := cfg.FileTypeOptions()
	assert.True(t, opts.Secondary)
	assert.Equal(t, "#010203", opts.Palette.Primary("go"))

	cfg.Display.ExtensionColors["go"] = "#ffffff"
	assert.Equal(t, "#010203", opts.Palette.Primary("go"), "options hold a copy")
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Display.DefaultMode = "git"
	cfg.Scan.Ignore = []string{"out"}

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, highlight.ModeGit, loaded.Mode())
	assert.Equal(t, []string{"out"}, loaded.Scan.Ignore)
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.Contains(t, theme, "primary", name)
		assert.Contains(t, theme, "border", name)
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("missing"))
}
