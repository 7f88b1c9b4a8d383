// Package app is the demo TUI: a grid of selectable items with drag-select
// wired through the gesture recognizer.
package app

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vpckso/marquee/internal/config"
	"github.com/vpckso/marquee/internal/dragselect"
	"github.com/vpckso/marquee/internal/geom"
	"github.com/vpckso/marquee/internal/tui/items"
	"github.com/vpckso/marquee/internal/tui/overlay"
	"github.com/vpckso/marquee/internal/tui/theme"
)

// Header takes two rows; the selection container starts below it with a
// one-cell left margin.
const (
	containerTop  = 3
	containerLeft = 1
	footerRows    = 1
)

type selectionStartedMsg struct{}

type selectionChangedMsg struct {
	box geom.Box
}

type selectionEndedMsg struct{}

// sender forwards messages into the running program. Callbacks fire before
// the program exists and from the frame clock goroutine, so the target is
// set late and guarded.
type sender struct {
	mu sync.Mutex
	fn func(tea.Msg)
}

func (s *sender) set(fn func(tea.Msg)) {
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
}

func (s *sender) send(msg tea.Msg) {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

type keyMap struct {
	Quit   key.Binding
	Cancel key.Binding
	Toggle key.Binding
}

var defaultKeys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
	Toggle: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "toggle select")),
}

// Model is the demo application state.
type Model struct {
	width  int
	height int

	scope *dragselect.ListenerScope
	rec   *dragselect.Recognizer
	view  *overlay.View
	grid  *items.Grid
	send  *sender
	keys  keyMap

	enabled  bool
	minArea  int
	selected map[string]bool
	status   string
	styles   map[overlay.Class]lipgloss.Style
}

// New builds the demo model from the selection config.
func New(cfg config.SelectionConfig) *Model {
	return newModel(cfg, nil)
}

func newModel(cfg config.SelectionConfig, clock dragselect.FrameClock) *Model {
	m := &Model{
		scope:    dragselect.NewScope(),
		view:     overlay.NewView(),
		grid:     items.Layout(geom.Point{X: containerLeft, Y: containerTop}, 0, 0),
		send:     &sender{},
		keys:     defaultKeys,
		enabled:  !cfg.Disabled,
		minArea:  cfg.MinArea,
		selected: map[string]bool{},
		status:   "drag to select items",
		styles: map[overlay.Class]lipgloss.Style{
			overlay.ClassTitle:    theme.Title,
			overlay.ClassStatus:   theme.Status,
			overlay.ClassItem:     theme.Item,
			overlay.ClassSelected: theme.ItemSelected,
			overlay.ClassBox:      theme.SelectionBox,
		},
	}
	opts := m.selectionOptions()
	opts.Scope = m.scope
	opts.Clock = clock
	m.rec = dragselect.New(m.view, opts)
	m.rec.Attach()
	return m
}

// selectionOptions builds the live recognizer configuration. The gate keeps
// presses on the header from starting a gesture.
func (m *Model) selectionOptions() dragselect.Options {
	opts := dragselect.Options{
		Enabled: dragselect.Bool(m.enabled),
		ShouldStart: func(target any, ev *dragselect.PointerEvent) bool {
			return ev.Y >= containerTop
		},
		OnStart: func(*dragselect.PointerEvent) {
			m.send.send(selectionStartedMsg{})
		},
		OnChange: func(box geom.Box) {
			m.send.send(selectionChangedMsg{box: box})
		},
		OnEnd: func(*dragselect.PointerEvent) {
			m.send.send(selectionEndedMsg{})
		},
	}
	if m.minArea > 0 {
		min := m.minArea
		opts.IsValidStart = func(box geom.Box) bool {
			return box.Area() > min
		}
	}
	return opts
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		if ev := pointerFromMouse(msg, m.targetAt(msg.X, msg.Y)); ev != nil {
			m.scope.Dispatch(ev)
		}
	case selectionStartedMsg:
		m.status = "selecting…"
	case selectionChangedMsg:
		m.selected = m.grid.HitTest(msg.box)
		m.status = fmt.Sprintf("selecting… %d items", len(m.selected))
	case selectionEndedMsg:
		m.status = fmt.Sprintf("selected %d items", len(m.selected))
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.rec.Detach()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.rec.Cancel()
		m.selected = map[string]bool{}
		m.status = "cancelled"
	case key.Matches(msg, m.keys.Toggle):
		m.enabled = !m.enabled
		m.rec.SetOptions(m.selectionOptions())
		if m.enabled {
			m.status = "drag-select enabled"
		} else {
			m.status = "drag-select disabled"
		}
	}
	return m, nil
}

func (m *Model) relayout() {
	w := m.width - containerLeft - 1
	h := m.height - containerTop - footerRows
	m.grid = items.Layout(geom.Point{X: containerLeft, Y: containerTop}, w, h)
	m.view.SetOrigin(geom.Point{X: containerLeft, Y: containerTop})
}

// targetAt reports the item ID under the pointer, for the ShouldStart gate.
func (m *Model) targetAt(x, y int) any {
	for _, it := range m.grid.Items() {
		if it.Bounds.Contains(x, y) {
			return it.ID
		}
	}
	return nil
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := overlay.NewCanvas(m.width, m.height)
	c.SetString(containerLeft, 0, "marquee — drag to select", overlay.ClassTitle)
	c.SetString(containerLeft, 1, m.status, overlay.ClassStatus)

	for _, it := range m.grid.Items() {
		class := overlay.ClassItem
		if m.selected[it.ID] {
			class = overlay.ClassSelected
		}
		c.DrawBoxOutline(it.Bounds, class)
		c.SetString(it.Bounds.Left+2, it.Bounds.Top+1, it.Label, class)
	}

	if box, ok := m.view.Box(); ok {
		origin, _ := m.view.ContainerBounds()
		c.DrawBoxOutline(box.Translate(origin.X, origin.Y), overlay.ClassBox)
	}

	c.SetString(containerLeft, m.height-1, "esc cancel · e toggle · q quit", overlay.ClassStatus)
	return c.Render(m.styles)
}

// Run starts the demo program.
func Run(cfg *config.Config) error {
	m := New(cfg.Selection)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	m.send.set(p.Send)
	defer m.rec.Detach()
	_, err := p.Run()
	return err
}
