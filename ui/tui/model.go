package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/drake/boxes/element"
	"github.com/drake/boxes/text"
	"github.com/drake/boxes/ui/tui/layout"
	"github.com/drake/boxes/ui/tui/style"
	"github.com/drake/boxes/ui/tui/widget"
)

// Loader produces a fresh document. It is called on start and on every reload.
type Loader func() (element.Document, error)

// loadedMsg carries the result of a Loader call.
type loadedMsg struct {
	doc element.Document
	err error
}

// Options tune the preview.
type Options struct {
	Plain bool // strip styling from the document body
	Log   *zap.Logger
}

// Model is the Bubble Tea model for the document preview.
type Model struct {
	// Layout
	engine *layout.Engine

	// Widgets
	title  *widget.Bar
	status *widget.Bar
	body   viewport.Model
	styles style.Styles

	// State
	name    string
	load    Loader
	doc     element.Document
	loadErr error
	loads   int
	loading bool // a Loader call is in flight
	plain   bool
	ready   bool
	log     *zap.Logger
}

// NewModel creates a preview of the document produced by load.
func NewModel(name string, load Loader, opts Options) Model {
	styles := style.DefaultStyles()
	title := widget.NewBar(styles.TitleBar)
	status := widget.NewBar(styles.StatusBar)

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	m := Model{
		engine: layout.NewEngine(layout.NewDock(title), layout.NewDock(status)),
		title:  title,
		status: status,
		body:   viewport.New(0, 0),
		styles: styles,
		name:   name,
		load:   load,
		plain:  opts.Plain,
		log:    log,

		// Init issues the first load.
		loading: true,
	}
	m.refreshBars()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.reload()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.refreshBars()
		m.apply(m.engine.Resize(msg.Width, msg.Height))
		m.ready = true
		return m, nil

	case loadedMsg:
		m.loading = false
		m.loads++
		if msg.err != nil {
			m.loadErr = msg.err
			m.log.Warn("reload failed", zap.String("script", m.name), zap.Error(msg.err))
		} else {
			m.loadErr = nil
			m.doc = msg.doc
			m.body.SetContent(m.content())
			m.log.Debug("document loaded", zap.String("script", m.name), zap.Int("elements", len(msg.doc)))
		}
		// Status text may change height when errors appear
		m.refreshBars()
		m.apply(m.engine.Layout())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// The loader drives a single Lua state; never run two at once.
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.reload()
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	m.refreshBars()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.engine.Compose(m.body.View())
}

// Document returns the document currently shown.
func (m Model) Document() element.Document {
	return m.doc
}

// Err returns the error from the most recent load, if it failed.
func (m Model) Err() error {
	return m.loadErr
}

func (m Model) reload() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		doc, err := load()
		return loadedMsg{doc: doc, err: err}
	}
}

// apply sizes the body to a layout frame.
func (m *Model) apply(f layout.Frame) {
	m.body.Width = f.Width
	m.body.Height = f.BodyHeight
}

func (m *Model) content() string {
	s := m.doc.String()
	if m.plain {
		s = text.StripANSI(s)
	}
	return strings.TrimSuffix(s, "\n")
}

func (m *Model) refreshBars() {
	m.title.Set(
		m.styles.Title.Render("boxes"),
		m.styles.Script.Render(m.name),
		m.styles.Meta.Render(fmt.Sprintf("%d elements", len(m.doc))),
	)

	left := m.styles.Help.Render("r reload · q quit")
	if m.loadErr != nil {
		left = m.styles.Error.Render(firstLine(m.loadErr.Error()))
	}
	percent := m.styles.Percent.Render(fmt.Sprintf("%3.0f%%", m.body.ScrollPercent()*100))
	m.status.Set(left, "", percent)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
