package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codecity/internal/errors"
	"codecity/internal/highlight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setupRepo writes a small repository with a quality report and returns
// its path and a config file path inside a separate directory.
func setupRepo(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/a.ts": "export const a = 1\n",
		"src/b.ts": "export const b = 2\n",
		"main.go":  "package main\n",
		".codecity/quality.yaml": `
coverage:
  src/a.ts: 92
  src/b.ts: 0
`,
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("sources:\n  git: false\n"), 0644))
	return root, cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "codecity dev\n", out)
}

func TestModesCmd(t *testing.T) {
	root, cfgPath := setupRepo(t)
	out, err := run(t, "--config", cfgPath, "modes", root)
	require.NoError(t, err)
	assert.Contains(t, out, "fileTypes")
	assert.Contains(t, out, "coverage")
	assert.Contains(t, out, "alexandria")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestLayersCmd(t *testing.T) {
	root, cfgPath := setupRepo(t)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "--config", cfgPath, "layers", root)
		require.NoError(t, err)
		assert.Contains(t, out, "Mode fileTypes")
		assert.Contains(t, out, "ext-ts-primary")
		assert.Contains(t, out, "ext-go-primary")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--config", cfgPath, "layers", root, "--mode", "coverage", "--format", "json")
		require.NoError(t, err)
		var doc layerDocument
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, highlight.ModeCoverage, doc.Mode)
		ids := map[string]highlight.Layer{}
		for _, l := range doc.Layers {
			ids[l.ID] = l
		}
		require.Contains(t, ids, "coverage-high")
		assert.True(t, ids["coverage-high"].Contains("src/a.ts"))
		assert.True(t, ids["coverage-zero"].Contains("src/b.ts"))
		assert.True(t, ids["coverage-nodata"].Contains("main.go"))
	})

	t.Run("yaml fallback", func(t *testing.T) {
		out, err := run(t, "--config", cfgPath, "layers", root, "-m", "git", "-f", "yaml")
		require.NoError(t, err)
		var doc layerDocument
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Equal(t, highlight.ModeGit, doc.Requested)
		assert.Equal(t, highlight.ModeFileTypes, doc.Mode, "git is disabled in the config")
		assert.NotEmpty(t, doc.Layers)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := run(t, "--config", cfgPath, "layers", root, "--mode", "heatmap")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "--config", cfgPath, "layers", root, "--format", "xml")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := run(t, "--config", cfgPath, "layers", filepath.Join(root, "nope"))
		assert.True(t, errors.IsFileNotFound(err))
	})
}

func TestInvalidConfigFails(t *testing.T) {
	root, _ := setupRepo(t)
	for name, body := range map[string]string{
		"unknown mode": "display:\n  default_mode: heatmap\n",
		"bad syntax":   "display: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))

			_, err := run(t, "--config", cfgPath, "modes", root)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err))
		})
	}
}

func TestPrintSummary(t *testing.T) {
	store := highlight.NewStore(highlight.ModeGit, highlight.FileTypeOptions{})
	store.SetScope("/repo")
	store.SetInputs(highlight.Inputs{
		Entities: []highlight.Entity{{Path: "a.go"}, {Path: "b.go"}},
		Git:      highlight.GitStatus{Staged: []string{"a.go"}, Untracked: []string{"b.go"}},
		HasGit:   true,
	})

	var buf bytes.Buffer
	printSummary(&buf, store, 2)
	out := buf.String()
	assert.Contains(t, out, "2 change(s), mode git")
	assert.Contains(t, out, highlight.GitLayerID("staged"))
	assert.Contains(t, out, highlight.GitLayerID("untracked"))
	assert.NotContains(t, out, highlight.GitLayerID("deleted"), "empty git layers are not built")
}
