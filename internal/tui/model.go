package tui

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"codecity/internal/errors"
	"codecity/internal/highlight"
	"codecity/internal/log"
	"codecity/internal/source"
	"codecity/internal/tui/common"
	"codecity/internal/tui/components"
	"codecity/internal/tui/messages"
	"codecity/internal/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Loader produces repository snapshots for the model.
type Loader interface {
	Load(ctx context.Context) (source.Snapshot, error)
}

// chromeHeight is the number of rows used by everything but the entity
// tree when the mode bar is at its tallest.
const chromeHeight = 20

type Model struct {
	ctx    context.Context
	store  *highlight.Store
	loader Loader

	keys   keyMap
	help   help.Model
	status *components.StatusBar

	focus        common.Focus
	entityCursor int
	layerCursor  int
	height       int

	layers  []highlight.Layer
	painted map[string]highlight.Layer

	// feed is the annotation feed of the last snapshot. cleared holds the
	// feed the user cleared; reloads carrying the same feed keep it hidden.
	feed    []highlight.Layer
	cleared []highlight.Layer
}

// New creates a model over store. loader may be nil, in which case the
// store is expected to be populated already and reloads are disabled.
func New(ctx context.Context, store *highlight.Store, loader Loader) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:    ctx,
		store:  store,
		loader: loader,
		keys:   defaultKeys(),
		help:   help.New(),
		status: components.NewStatusBar(),
		height: 20,
	}
	m.refresh()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.startReload()
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - chromeHeight
		m.help.Width = msg.Width
		return m, nil

	case messages.SnapshotMsg:
		m.status.SetLoading(false)
		if msg.Err != nil {
			// The repository is gone; stale layers would paint files that
			// no longer exist.
			if errors.IsFileNotFound(msg.Err) {
				m.store.Reset()
				m.feed, m.cleared = nil, nil
				m.refresh()
			}
			m.status.SetError(msg.Err)
			return m, nil
		}
		m.applySnapshot(msg.Snapshot)
		if msg.Changes > 0 {
			m.status.SetText(fmt.Sprintf("Reloaded after %d change(s)", msg.Changes))
		} else {
			m.status.SetText(fmt.Sprintf("Loaded %d entities", len(m.store.Entities())))
		}
		return m, nil

	case messages.ErrorMsg:
		m.status.SetError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, m.status.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextMode):
		m.selectMode(m.nextMode())

	case key.Matches(msg, m.keys.PickMode):
		n, _ := strconv.Atoi(msg.String())
		modes := highlight.ListModes()
		if n >= 1 && n <= len(modes) {
			m.selectMode(modes[n-1].ID)
		}

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Focus):
		if m.focus == common.FocusEntities {
			m.focus = common.FocusLayers
		} else {
			m.focus = common.FocusEntities
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.focus == common.FocusLayers && m.layerCursor < len(m.layers) {
			m.store.ToggleLayer(m.layers[m.layerCursor].ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Clear):
		m.store.ClearAnnotationLayers()
		if len(m.feed) > 0 {
			m.cleared = m.feed
		}
		m.refresh()
		m.status.SetText("Cleared agent layers")

	case key.Matches(msg, m.keys.Reload):
		return m, m.startReload()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) selectMode(id highlight.ModeID) {
	m.store.SetActiveMode(id)
	m.refresh()
	if got := m.store.ActiveMode(); got != id {
		desc, _ := highlight.Lookup(id)
		m.status.SetText(desc.Name + " has no data; showing file types")
		return
	}
	log.LogWithFields(log.F("mode", string(id))).Debug("Mode selected")
	m.status.SetText("")
}

// nextMode is the available mode after the active one, wrapping around.
func (m *Model) nextMode() highlight.ModeID {
	available := m.store.AvailableModes()
	if len(available) == 0 {
		return highlight.ModeFileTypes
	}
	active := m.store.ActiveMode()
	for i, d := range available {
		if d.ID == active {
			return available[(i+1)%len(available)].ID
		}
	}
	return available[0].ID
}

func (m *Model) moveCursor(delta int) {
	if m.focus == common.FocusLayers {
		m.layerCursor = clamp(m.layerCursor+delta, len(m.layers))
		return
	}
	m.entityCursor = clamp(m.entityCursor+delta, len(m.store.Entities()))
}

func clamp(v, n int) int {
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// applySnapshot pushes snap into the store, leaving out an annotation feed
// the user cleared until its content or the repository changes.
func (m *Model) applySnapshot(snap source.Snapshot) {
	if m.cleared != nil && (snap.Scope != m.store.Scope() || !reflect.DeepEqual(snap.Annotations, m.cleared)) {
		m.cleared = nil
	}
	m.feed = snap.Annotations
	if m.cleared != nil {
		snap.Annotations = nil
	}
	snap.Apply(m.store)
	m.refresh()
}

// refresh re-reads the store after a change.
func (m *Model) refresh() {
	m.layers = m.store.ActiveLayerSet()
	m.painted = highlight.Paint(m.layers)
	m.layerCursor = clamp(m.layerCursor, len(m.layers))
	m.entityCursor = clamp(m.entityCursor, len(m.store.Entities()))
}

func (m *Model) startReload() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	m.status.SetText("Loading " + m.store.Scope())
	spin := m.status.SetLoading(true)
	return tea.Batch(spin, Reload(m.ctx, m.loader))
}

// Reload returns a command that loads a snapshot and reports it as a
// SnapshotMsg.
func Reload(ctx context.Context, loader Loader) tea.Cmd {
	return func() tea.Msg {
		snap, err := loader.Load(ctx)
		return messages.SnapshotMsg{Snapshot: snap, Err: err}
	}
}

// ModelReader implementation

func (m *Model) Scope() string { return m.store.Scope() }

func (m *Model) Modes() []common.ModeRow {
	available := make(map[highlight.ModeID]bool)
	for _, d := range m.store.AvailableModes() {
		available[d.ID] = true
	}
	active := m.store.ActiveMode()
	var rows []common.ModeRow
	for i, d := range highlight.ListModes() {
		rows = append(rows, common.ModeRow{
			Descriptor: d,
			Key:        strconv.Itoa(i + 1),
			Available:  available[d.ID],
			Active:     d.ID == active,
		})
	}
	return rows
}

func (m *Model) Layers() []highlight.Layer { return m.layers }

func (m *Model) Entities() []highlight.Entity { return m.store.Entities() }

func (m *Model) Paint(path string) (highlight.Layer, bool) {
	l, ok := m.painted[path]
	return l, ok
}

func (m *Model) Hovered() (highlight.Entity, []highlight.Layer, bool) {
	entities := m.store.Entities()
	if m.entityCursor >= len(entities) {
		return highlight.Entity{}, nil, false
	}
	e := entities[m.entityCursor]
	return e, highlight.Membership(m.layers, e.Path), true
}

func (m *Model) EntityCursor() int { return m.entityCursor }

func (m *Model) LayerCursor() int { return m.layerCursor }

func (m *Model) Focus() common.Focus { return m.focus }

func (m *Model) Height() int { return m.height }

func (m *Model) StatusView() string { return m.status.View() }

func (m *Model) HelpView() string { return m.help.View(m.keys) }

// Store returns the store the model renders.
func (m *Model) Store() *highlight.Store { return m.store }
