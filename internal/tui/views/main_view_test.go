package views

import (
	"testing"

	"codecity/internal/highlight"
	"codecity/internal/tui/common"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	scope    string
	modes    []common.ModeRow
	layers   []highlight.Layer
	entities []highlight.Entity
	cursor   int
	focus    common.Focus
	status   string
}

func (m *mockModel) Scope() string                { return m.scope }
func (m *mockModel) Modes() []common.ModeRow      { return m.modes }
func (m *mockModel) Layers() []highlight.Layer    { return m.layers }
func (m *mockModel) Entities() []highlight.Entity { return m.entities }
func (m *mockModel) EntityCursor() int            { return m.cursor }
func (m *mockModel) LayerCursor() int             { return 0 }
func (m *mockModel) Focus() common.Focus          { return m.focus }
func (m *mockModel) Height() int                  { return 10 }
func (m *mockModel) StatusView() string           { return m.status }
func (m *mockModel) HelpView() string             { return "q quit" }

func (m *mockModel) Paint(path string) (highlight.Layer, bool) {
	top, ok := highlight.Paint(m.layers)[path]
	return top, ok
}

func (m *mockModel) Hovered() (highlight.Entity, []highlight.Layer, bool) {
	if m.cursor >= len(m.entities) {
		return highlight.Entity{}, nil, false
	}
	e := m.entities[m.cursor]
	return e, highlight.Membership(m.layers, e.Path), true
}

func TestRenderMainView(t *testing.T) {
	fileTypes, _ := highlight.Lookup(highlight.ModeFileTypes)
	git, _ := highlight.Lookup(highlight.ModeGit)

	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "empty store",
			model:    &mockModel{scope: "/repo"},
			contains: []string{"/repo", "No layers", "No files found", "q quit"},
		},
		{
			name: "populated",
			model: &mockModel{
				scope: "/repo",
				modes: []common.ModeRow{
					{Descriptor: fileTypes, Key: "1", Available: true},
					{Descriptor: git, Key: "2", Available: true, Active: true},
				},
				layers: []highlight.Layer{
					{ID: "git-highlight-staged", Name: "Staged", Color: "#22c55e", Priority: 100, Enabled: true,
						Category: highlight.CategoryGit,
						Items:    []highlight.Item{{Path: "src/a.ts", Type: highlight.ItemFile, RenderStrategy: highlight.RenderFill}}},
					{ID: "agent-x", Name: "Agent X", Color: "#a855f7", Priority: 150, Enabled: false,
						Category: highlight.CategoryAnnotation,
						Items:    []highlight.Item{{Path: "src/a.ts", Type: highlight.ItemFile, RenderStrategy: highlight.RenderGlow}}},
				},
				entities: []highlight.Entity{{Path: "src", IsDirectory: true}, {Path: "src/a.ts"}},
				cursor:   1,
				status:   "Loaded 2 entities",
			},
			contains: []string{
				"2 Git Status",
				"Staged",
				"Agent X (agent)",
				"p100 · 1 items",
				"src/",
				"a.ts",
				"Agent X (off)",
				"Loaded 2 entities",
			},
			excludes: []string{"No files found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderMainView(tt.model)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderHover(t *testing.T) {
	m := &mockModel{entities: []highlight.Entity{{Path: "a.go"}}, cursor: 3}
	assert.Empty(t, RenderHover(m))

	m.cursor = 0
	assert.Contains(t, RenderHover(m), "a.go")
}
