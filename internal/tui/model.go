// internal/tui/model.go
// Package tui provides the interactive terminal chart view.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/tablechart/internal/chart"
	"github.com/mwiater/tablechart/internal/dataset"
	"github.com/mwiater/tablechart/internal/scale"
)

// viewState mirrors the renderer lifecycle.
type viewState int

const (
	viewLoading viewState = iota
	viewRendered
	viewFailed
)

// frameInterval paces the sort/reset animation.
const frameInterval = 33 * time.Millisecond

// headerRows is the number of lines above the chart.
const headerRows = 2

// Options describe what the view shows.
type Options struct {
	Source      string
	Placeholder string
}

// model is the Bubble Tea model for the live chart.
type model struct {
	ctx              context.Context
	renderer         *chart.Renderer
	loader           chart.Loader
	opts             Options
	state            viewState
	err              error
	spinner          spinner.Model
	help             help.Model
	keys             keyMap
	width, height    int
	anim             *animation
	now              func() time.Time
	requestStartTime time.Time
}

// loadedMsg carries the settled fetch.
type loadedMsg struct {
	ds  *dataset.Dataset
	err error
}

// frameMsg advances a running animation.
type frameMsg time.Time

func newModel(ctx context.Context, r *chart.Renderer, loader chart.Loader, opts Options) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	if opts.Placeholder == "" {
		opts.Placeholder = "Unavailable"
	}

	state := viewLoading
	switch r.State() {
	case chart.StateRendered:
		state = viewRendered
	case chart.StateFailed:
		state = viewFailed
	}
	return &model{
		ctx:              ctx,
		renderer:         r,
		loader:           loader,
		opts:             opts,
		state:            state,
		err:              r.Err(),
		spinner:          s,
		help:             help.New(),
		keys:             defaultKeyMap(),
		now:              time.Now,
		requestStartTime: time.Now(),
	}
}

// loadCmd runs the fetch off the update loop.
func loadCmd(ctx context.Context, loader chart.Loader) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return loadedMsg{err: fmt.Errorf("%w: no loader", dataset.ErrFetch)}
		}
		ds, err := loader(ctx)
		return loadedMsg{ds: ds, err: err}
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init starts the spinner and, while loading, the fetch.
func (m *model) Init() tea.Cmd {
	if m.state != viewLoading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.loader))
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state != viewRendered {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Sort):
			frame, err := m.renderer.Sort()
			return m, m.animate(frame, err)
		case key.Matches(msg, m.keys.Reset):
			frame, err := m.renderer.Reset()
			return m, m.animate(frame, err)
		case key.Matches(msg, m.keys.Left):
			m.moveHover(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveHover(1)
		case key.Matches(msg, m.keys.Leave):
			m.renderer.Leave()
		}
		return m, nil

	case tea.MouseMsg:
		if m.state == viewRendered && msg.Action == tea.MouseActionMotion {
			m.hoverAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.renderer.Resize(m.chartLayout())
		return m, nil

	case loadedMsg:
		if err := m.renderer.Complete(msg.ds, msg.err); err != nil {
			m.state = viewFailed
			m.err = err
			return m, nil
		}
		m.state = viewRendered
		if m.width > 0 {
			m.renderer.Resize(m.chartLayout())
		}
		return m, nil

	case frameMsg:
		if m.anim == nil {
			return m, nil
		}
		if m.anim.done(m.now()) {
			m.anim = nil
			return m, nil
		}
		return m, frameCmd()

	case spinner.TickMsg:
		if m.state != viewLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) animate(frame chart.Frame, err error) tea.Cmd {
	if err != nil {
		m.err = err
		return nil
	}
	m.anim = newAnimation(frame, m.now())
	return frameCmd()
}

// moveHover steps the hovered bar left or right in display order.
func (m *model) moveHover(delta int) {
	bars := m.renderer.Bars()
	if len(bars) == 0 {
		return
	}
	idx := -1
	for i, b := range bars {
		if b.ID == m.renderer.Hovered() {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(bars) - 1
	default:
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(bars) {
			idx = len(bars) - 1
		}
	}
	_, _ = m.renderer.Hover(bars[idx].ID)
}

// hoverAt hovers the bar under the pointer or leaves when there is none.
func (m *model) hoverAt(x, y int) {
	l := m.renderer.Layout()
	row := y - headerRows - int(l.Margin.Top)
	if row < 0 || float64(row) >= l.InnerHeight() {
		m.renderer.Leave()
		return
	}
	b, ok := m.renderer.BarAt(float64(x) - l.Margin.Left)
	if !ok {
		m.renderer.Leave()
		return
	}
	if b.ID != m.renderer.Hovered() {
		_, _ = m.renderer.Hover(b.ID)
	}
}

// chartLayout sizes the chart to whatever the header, metrics table and
// help line leave free.
func (m *model) chartLayout() chart.Layout {
	reserved := headerRows + 1
	if tbl := MetricsTable(m.renderer.Metrics(), m.opts.Placeholder); tbl != "" {
		reserved += lipgloss.Height(tbl) + 1
	}
	rows := m.height - reserved
	if rows < minChartRows {
		rows = minChartRows
	}
	return cellLayout(m.width, rows)
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.state {
	case viewLoading:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Loading %s... %ss\n", m.spinner.View(), m.opts.Source, timer)
	case viewFailed:
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n  (q to quit)"
	default:
		return m.renderedView(true)
	}
}

func (m *model) renderedView(withHelp bool) string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(drawChart(m.renderer, m.anim, m.now()))
	if tbl := MetricsTable(m.renderer.Metrics(), m.opts.Placeholder); tbl != "" {
		b.WriteString("\n\n")
		b.WriteString(tbl)
	}
	if withHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

var (
	labelStyle = lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	badgeStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1).MarginLeft(1)
	hoverStyle = lipgloss.NewStyle().Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
)

func (m *model) header() string {
	parts := []string{
		labelStyle.Render("Chart:"),
		badgeStyle.Render(fmt.Sprintf("Source: %s", m.opts.Source)),
		badgeStyle.Render(fmt.Sprintf("Bars: %d", len(m.renderer.Bars()))),
		badgeStyle.Render(fmt.Sprintf("Order: %s", m.renderer.Direction())),
	}
	if tip, ok := m.renderer.Tooltip(); ok {
		for _, bar := range m.renderer.Bars() {
			if bar.ID == tip.BarID {
				parts = append(parts, hoverStyle.Render(fmt.Sprintf("%s = %s", bar.Key, scale.FormatValue(bar.Value))))
				break
			}
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Run starts the live view. The renderer must be freshly constructed; the
// fetch runs inside the program so the spinner shows while it is pending.
func Run(ctx context.Context, r *chart.Renderer, loader chart.Loader, opts Options) error {
	m := newModel(ctx, r, loader, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		return err
	}
	if m.state == viewFailed {
		return m.err
	}
	return nil
}

// Snapshot renders an already loaded renderer as plain chart text for
// width x height cells, without the interactive help line. A non-positive
// size renders nothing.
func Snapshot(r *chart.Renderer, width, height int, opts Options) string {
	if width < 1 || height < 1 {
		return ""
	}
	m := newModel(context.Background(), r, nil, opts)
	if m.state == viewFailed {
		return fmt.Sprintf("Error: %v", m.err)
	}
	if m.state != viewRendered {
		return ""
	}
	m.width, m.height = width, height
	r.Resize(m.chartLayout())
	return m.renderedView(false)
}
